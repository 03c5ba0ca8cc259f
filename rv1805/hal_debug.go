package rv1805

type halDebug struct {
	id   string
	l    Logger
	next HAL
}

func (h *halDebug) Read(p []byte) (int, error) {
	h.l.Printf("%5s >>  recv(%d)", h.id, len(p))
	n, err := h.next.Read(p)
	h.l.Printf("%5s <<  recv %d(%d) %+v", h.id, n, len(p), err)
	if n > 0 {
		h.l.Printf("%s", hexDump(p[:n]))
	}
	return n, err
}

func (h *halDebug) Write(p []byte) (int, error) {
	h.l.Printf("%5s >>  send", h.id)
	if len(p) > 0 {
		h.l.Printf("%s", hexDump(p))
	}
	n, err := h.next.Write(p)
	h.l.Printf("%5s <<  send %d %+v", h.id, n, err)
	return n, err
}
