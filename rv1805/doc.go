// Package rv1805 is a driver for the Micro Crystal RV-1805-C3 real-time clock
// in Go.
//
// It supports communication using I²C, either on a host bus through
// periph.io or through a Microchip MCP2221A USB-to-I²C bridge.
//
// The driver keeps an 8 byte copy of the time and date registers. UpdateTime
// refreshes the copy from the device; the getters and string helpers only
// decode the copy and never touch the bus.
//
// Copyright (c) 2022 Northvolt AB and the rv1805 authors.
//
// # Datasheets
//
// RV-1805-C3 Application Manual:
// https://www.microcrystal.com/fileadmin/Media/Products/RTC/App.Manual/RV-1805-C3_App-Manual.pdf
package rv1805
