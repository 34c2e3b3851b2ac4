package parser

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"strconv"
)

// Parser performs the binary-and-text parsing that sits below Reader:
// decoding compressed object streams and binary cross-reference streams.
// Unlike ObjectParser, which only understands the token grammar, Parser
// also knows the fixed-width binary layouts PDF uses for xref streams.
type Parser struct {
	r io.ReadCloser
}

// NewParser creates a Parser reading raw bytes from r. r is not consumed at
// construction time; callers invoke the specific parsing method
// (ParseObjectStream, parseXRefStreamEntries) that applies to the data at
// hand.
func NewParser(r io.ReadCloser) *Parser {
	return &Parser{r: r}
}

// Close closes the underlying reader, if any.
func (p *Parser) Close() error {
	if p.r == nil {
		return nil
	}
	return p.r.Close()
}

// ParseObjectStream parses the decoded content of an object stream (PDF
// 1.5+, /Type /ObjStm): a header of numObjects "objNum offset" integer
// pairs, followed by the object bodies themselves starting at firstOffset.
//
// Reference: PDF 1.7 specification, Section 7.5.7 (Object Streams).
func (p *Parser) ParseObjectStream(data []byte, numObjects, firstOffset int) (map[int]PdfObject, error) {
	if numObjects <= 0 {
		return nil, fmt.Errorf("parser: invalid number of objects %d", numObjects)
	}
	if firstOffset < 0 || firstOffset > len(data) {
		return nil, fmt.Errorf("parser: invalid first offset %d", firstOffset)
	}

	header := data[:firstOffset]
	lex := NewLexer(bytes.NewReader(header))

	type pair struct {
		number int
		offset int
	}
	pairs := make([]pair, 0, numObjects)
	for i := 0; i < numObjects; i++ {
		numTok, err := lex.NextToken()
		if err != nil || numTok.Type != TokenInteger {
			return nil, fmt.Errorf("parser: malformed object stream header entry %d", i)
		}
		offTok, err := lex.NextToken()
		if err != nil || offTok.Type != TokenInteger {
			return nil, fmt.Errorf("parser: malformed object stream header entry %d", i)
		}
		num, _ := strconv.Atoi(numTok.Value)
		off, _ := strconv.Atoi(offTok.Value)
		pairs = append(pairs, pair{number: num, offset: off})
	}

	objects := make(map[int]PdfObject, numObjects)
	body := data[firstOffset:]
	for _, pr := range pairs {
		if pr.offset < 0 || pr.offset > len(body) {
			return nil, fmt.Errorf("parser: object %d offset %d out of range", pr.number, pr.offset)
		}
		objLexer := NewLexer(bytes.NewReader(body[pr.offset:]))
		objParser := NewObjectParser(objLexer)
		obj, err := objParser.ParseObject()
		if err != nil {
			return nil, fmt.Errorf("parser: object %d in object stream: %w", pr.number, err)
		}
		objects[pr.number] = obj
	}

	return objects, nil
}

// parseXRefStreamEntries decodes the binary rows of a cross-reference stream
// (PDF 1.5+, /Type /XRef) according to its /W field-width array and /Index
// subsection list.
//
// Reference: PDF 1.7 specification, Section 7.5.8 (Cross-Reference Streams).
func (p *Parser) parseXRefStreamEntries(dict *Dictionary, data []byte) (*XRefTable, error) {
	wArr := dict.GetArray("W")
	if wArr == nil || wArr.Len() != 3 {
		return nil, fmt.Errorf("parser: xref stream missing or malformed /W array")
	}

	widths := make([]int, 3)
	for i := 0; i < 3; i++ {
		intObj, ok := wArr.Get(i).(*Integer)
		if !ok {
			return nil, fmt.Errorf("parser: /W entry %d is not an integer", i)
		}
		widths[i] = int(intObj.Value())
	}

	entryWidth := widths[0] + widths[1] + widths[2]
	if entryWidth <= 0 {
		return nil, fmt.Errorf("parser: xref stream entry width is zero")
	}

	type section struct{ start, count int }
	var sections []section

	if indexArr := dict.GetArray("Index"); indexArr != nil {
		for i := 0; i+1 < indexArr.Len(); i += 2 {
			startObj, ok1 := indexArr.Get(i).(*Integer)
			countObj, ok2 := indexArr.Get(i + 1).(*Integer)
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("parser: /Index entries must be integers")
			}
			sections = append(sections, section{start: int(startObj.Value()), count: int(countObj.Value())})
		}
	} else {
		size := dict.GetInteger("Size")
		sections = append(sections, section{start: 0, count: int(size)})
	}

	table := NewXRefTable()
	pos := 0
	for _, sec := range sections {
		for i := 0; i < sec.count; i++ {
			if pos+entryWidth > len(data) {
				return nil, fmt.Errorf("parser: xref stream data truncated")
			}
			row := data[pos : pos+entryWidth]
			pos += entryWidth

			off := 0
			typeVal := int64(1) // default type when W[0] == 0 is "in use"
			if widths[0] > 0 {
				typeVal = readBigEndianInt(row[off : off+widths[0]])
			}
			off += widths[0]
			field2 := readBigEndianInt(row[off : off+widths[1]])
			off += widths[1]
			field3 := readBigEndianInt(row[off : off+widths[2]])

			objNum := sec.start + i
			var entryType XRefEntryType
			switch typeVal {
			case 0:
				entryType = XRefEntryFree
			case 2:
				entryType = XRefEntryCompressed
			default:
				entryType = XRefEntryInUse
			}

			table.SetEntry(objNum, XRefEntry{
				Type:       entryType,
				Offset:     field2,
				Generation: int(field3),
			})
		}
	}

	return table, nil
}

// readBigEndianInt decodes a big-endian unsigned integer of arbitrary byte width.
func readBigEndianInt(data []byte) int64 {
	var v int64
	for _, b := range data {
		v = v<<8 | int64(b)
	}
	return v
}

// flateDecoder wraps compress/zlib for the parser package's own, minimal
// decode-on-read needs (resolving object streams and xref streams while
// opening a file). The richer filter chain used by the analysis pipeline
// lives in internal/encoding.
type flateDecoder struct{}

func (flateDecoder) Decode(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parser: zlib reader: %w", err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
