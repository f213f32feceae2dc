package render

import (
	"bytes"
	"fmt"
	"strings"
)

// Document builds a fixed-width plain-text artifact, the kind rendered into
// WhatsApp messages or dropped onto a thermal printer spooler.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument creates a document with the given character width.
// Common widths: 32 for 58mm receipts, 48 for 80mm.
func NewDocument(charWidth int) *Document {
	if charWidth <= 0 {
		charWidth = 42
	}
	return &Document{width: charWidth}
}

// Width returns the configured character width.
func (d *Document) Width() int {
	return d.width
}

// Text writes a line of text followed by a newline.
func (d *Document) Text(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
	return d
}

// TextF writes a formatted line followed by a newline.
func (d *Document) TextF(format string, args ...interface{}) *Document {
	d.buf.WriteString(fmt.Sprintf(format, args...))
	d.buf.WriteByte('\n')
	return d
}

// Center writes s centered within the document width.
func (d *Document) Center(s string) *Document {
	pad := (d.width - len(s)) / 2
	if pad < 0 {
		pad = 0
	}
	d.buf.WriteString(strings.Repeat(" ", pad))
	d.buf.WriteString(s)
	d.buf.WriteByte('\n')
	return d
}

// Separator writes a full-width separator line.
func (d *Document) Separator(char byte) *Document {
	d.buf.WriteString(strings.Repeat(string(char), d.width))
	d.buf.WriteByte('\n')
	return d
}

// KeyValue writes a left-aligned key and right-aligned value on one line.
// Example: "Net Amount               1180.00"
func (d *Document) KeyValue(key, value string) *Document {
	spaces := d.width - len(key) - len(value)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(key)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(value)
	d.buf.WriteByte('\n')
	return d
}

// ItemLine writes an item line: qty x name, then a right-aligned total.
// Example: "2x Hand Sanitizer          236.00"
func (d *Document) ItemLine(qty int, name, total string) *Document {
	prefix := fmt.Sprintf("%dx %s", qty, name)
	spaces := d.width - len(prefix) - len(total)
	if spaces < 1 {
		spaces = 1
	}
	d.buf.WriteString(prefix)
	d.buf.WriteString(strings.Repeat(" ", spaces))
	d.buf.WriteString(total)
	d.buf.WriteByte('\n')
	return d
}

// BlankLine writes an empty line.
func (d *Document) BlankLine() *Document {
	d.buf.WriteByte('\n')
	return d
}

// Bytes returns the accumulated document.
func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}

// Reset clears the buffer.
func (d *Document) Reset() *Document {
	d.buf.Reset()
	return d
}
