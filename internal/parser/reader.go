package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Reader opens a PDF file and answers structural questions about it: its
// version, catalog, page tree, and individual indirect objects. It owns the
// file handle and an in-memory copy of the bytes, since forensic scanning
// (incremental-update detection, raw %%EOF boundaries) needs random access
// to the whole file, not just a token stream.
//
// Reader is safe for concurrent use after Open returns.
type Reader struct {
	filename string
	file     *os.File
	data     []byte

	version string
	trailer *Dictionary
	xref    *XRefTable

	objectCache map[int]PdfObject
	objStmCache map[int]map[int]PdfObject
	cacheMu     sync.RWMutex

	catalog   *Dictionary
	pagesRoot *Dictionary
	flatPages []*Dictionary
	pagesMu   sync.Mutex

	loaded    bool
	recovered bool
}

// NewReader creates a Reader for filename. Call Open to actually read it.
func NewReader(filename string) *Reader {
	return &Reader{
		filename:    filename,
		objectCache: make(map[int]PdfObject),
		objStmCache: make(map[int]map[int]PdfObject),
		xref:        NewXRefTable(),
	}
}

// OpenPDF creates a Reader for filename and opens it in one step.
func OpenPDF(filename string) (*Reader, error) {
	r := NewReader(filename)
	if err := r.Open(); err != nil {
		return nil, err
	}
	return r, nil
}

// ReadPDFInfo is a convenience function that opens a PDF just long enough to
// report its version and page count.
func ReadPDFInfo(filename string) (version string, pageCount int, err error) {
	r, err := OpenPDF(filename)
	if err != nil {
		return "", 0, err
	}
	defer r.Close()

	pageCount, err = r.GetPageCount()
	if err != nil {
		return "", 0, err
	}
	return r.Version(), pageCount, nil
}

// Open reads the file, validates its header, locates the cross-reference
// table via startxref, and loads the trailer. If the xref chain is missing
// or unusable, Open falls back to a linear recovery scan for "N G obj"
// markers, the same degraded mode real-world PDF tools use against
// corrupted files.
func (r *Reader) Open() error {
	f, err := os.Open(r.filename)
	if err != nil {
		return fmt.Errorf("parser: failed to open file %q: %w", r.filename, err)
	}
	r.file = f

	data, err := io.ReadAll(f)
	if err != nil {
		return fmt.Errorf("parser: failed to read file %q: %w", r.filename, err)
	}
	r.data = data

	version, err := extractPDFVersion(data)
	if err != nil {
		return err
	}
	r.version = version

	startOffset, startErr := findStartXRef(data)

	r.xref = NewXRefTable()

	var trailer *Dictionary
	if startErr == nil {
		trailer, err = r.parseXRefSection(startOffset, make(map[int64]bool))
	} else {
		err = startErr
	}

	if err != nil || trailer == nil || !trailer.Has("Root") {
		rebuilt, rerr := r.rebuildXRefByScan()
		if rerr != nil {
			if startErr != nil {
				return startErr
			}
			return fmt.Errorf("parser: failed to parse cross-reference table and recovery scan failed: %w", rerr)
		}
		trailer = rebuilt
		r.recovered = true
	}

	r.trailer = trailer
	r.loaded = true
	return nil
}

// Close closes the underlying file handle. Close is idempotent.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Version returns the PDF version from the file header, e.g. "1.7".
func (r *Reader) Version() string {
	return r.version
}

// Trailer returns the merged trailer dictionary (original section plus any
// Prev-chained incremental updates).
func (r *Reader) Trailer() *Dictionary {
	return r.trailer
}

// XRefTable returns the merged cross-reference table.
func (r *Reader) XRefTable() *XRefTable {
	return r.xref
}

// RawBytes returns the entire file content, for forensic byte-level
// scanning (e.g. locating "%%EOF" markers for incremental-update analysis).
func (r *Reader) RawBytes() []byte {
	return r.data
}

// FileStructure reports whether the cross-reference table was read directly
// ("original") or reconstructed by a linear object scan after the real one
// failed to parse ("rebuilt").
func (r *Reader) FileStructure() string {
	if r.recovered {
		return "rebuilt"
	}
	return "original"
}

// String returns a short human-readable summary of the reader's state.
func (r *Reader) String() string {
	count, _ := r.GetPageCount()
	return fmt.Sprintf("PDFReader{file=%q, version=%q, pages=%d}", r.filename, r.version, count)
}

// GetObject returns the indirect object with the given number, resolving it
// from a classic byte offset, an object stream, or the in-memory cache.
func (r *Reader) GetObject(number int) (PdfObject, error) {
	if !r.loaded {
		return nil, fmt.Errorf("parser: reader not loaded: call Open first")
	}

	r.cacheMu.RLock()
	if obj, ok := r.objectCache[number]; ok {
		r.cacheMu.RUnlock()
		return obj, nil
	}
	r.cacheMu.RUnlock()

	entry, ok := r.xref.GetEntry(number)
	if !ok {
		return nil, fmt.Errorf("parser: object %d not found", number)
	}

	var obj PdfObject
	switch entry.Type {
	case XRefEntryFree:
		return nil, fmt.Errorf("parser: object %d not found (free entry)", number)

	case XRefEntryInUse:
		indirect, err := r.readIndirectObjectAt(entry.Offset)
		if err != nil {
			return nil, fmt.Errorf("parser: object %d: %w", number, err)
		}
		obj = indirect.Object

	case XRefEntryCompressed:
		objects, err := r.objectsFromStream(int(entry.Offset))
		if err != nil {
			return nil, fmt.Errorf("parser: object %d: %w", number, err)
		}
		resolved, ok := objects[number]
		if !ok {
			return nil, fmt.Errorf("parser: object %d not found in object stream %d", number, entry.Offset)
		}
		obj = resolved

	default:
		return nil, fmt.Errorf("parser: object %d has an unknown cross-reference entry type", number)
	}

	r.cacheMu.Lock()
	r.objectCache[number] = obj
	r.cacheMu.Unlock()

	return obj, nil
}

// resolveReferences resolves obj one level deep: an IndirectReference is
// replaced by the object it points to (as returned by GetObject, itself
// unresolved); Arrays and Dictionaries are walked structurally so that every
// reference reachable without going back through GetObject is resolved.
//
// It deliberately does not chase references found inside an already-resolved
// object - PDF page trees routinely contain back-references (a Page's
// /Parent points at the Pages node that lists it via /Kids), and eagerly
// resolving those would recurse forever.
func (r *Reader) resolveReferences(obj PdfObject) PdfObject {
	switch o := obj.(type) {
	case *IndirectReference:
		resolved, err := r.GetObject(o.Number)
		if err != nil {
			return obj
		}
		return resolved

	case *Array:
		result := NewArrayWithCapacity(o.Len())
		for _, elem := range o.Elements() {
			result.Append(r.resolveReferences(elem))
		}
		return result

	case *Dictionary:
		result := NewDictionaryWithCapacity(o.Len())
		for _, key := range o.Keys() {
			result.Set(key, r.resolveReferences(o.Get(key)))
		}
		return result

	default:
		return obj
	}
}

// GetCatalog returns the document catalog (the object the trailer's /Root
// entry points to).
func (r *Reader) GetCatalog() (*Dictionary, error) {
	if !r.loaded {
		return nil, fmt.Errorf("parser: catalog not loaded: call Open first")
	}

	r.pagesMu.Lock()
	defer r.pagesMu.Unlock()

	if r.catalog != nil {
		return r.catalog, nil
	}

	rootObj := r.trailer.Get("Root")
	ref, ok := rootObj.(*IndirectReference)
	if !ok {
		return nil, fmt.Errorf("parser: trailer /Root is not an indirect reference")
	}

	obj, err := r.GetObject(ref.Number)
	if err != nil {
		return nil, fmt.Errorf("parser: resolving catalog: %w", err)
	}
	dict, ok := obj.(*Dictionary)
	if !ok {
		return nil, fmt.Errorf("parser: catalog object is not a dictionary")
	}

	r.catalog = dict
	return dict, nil
}

// GetPages returns the root of the page tree (the catalog's /Pages entry).
func (r *Reader) GetPages() (*Dictionary, error) {
	if !r.loaded {
		return nil, fmt.Errorf("parser: pages not loaded: call Open first")
	}

	catalog, err := r.GetCatalog()
	if err != nil {
		return nil, err
	}

	r.pagesMu.Lock()
	defer r.pagesMu.Unlock()

	if r.pagesRoot != nil {
		return r.pagesRoot, nil
	}

	pagesObj := catalog.Get("Pages")
	ref, ok := pagesObj.(*IndirectReference)
	if !ok {
		return nil, fmt.Errorf("parser: catalog /Pages is not an indirect reference")
	}

	obj, err := r.GetObject(ref.Number)
	if err != nil {
		return nil, fmt.Errorf("parser: resolving pages root: %w", err)
	}
	dict, ok := obj.(*Dictionary)
	if !ok {
		return nil, fmt.Errorf("parser: pages object is not a dictionary")
	}

	r.pagesRoot = dict
	return dict, nil
}

// GetPageCount returns the number of leaf pages in the page tree.
func (r *Reader) GetPageCount() (int, error) {
	pages, err := r.flattenPages()
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// GetPage returns the page dictionary at the given zero-based index, in
// document order, walking nested /Kids trees as needed.
func (r *Reader) GetPage(index int) (*Dictionary, error) {
	if !r.loaded {
		return nil, fmt.Errorf("parser: reader not loaded: call Open first")
	}
	if index < 0 {
		return nil, fmt.Errorf("parser: invalid page number %d", index)
	}

	pages, err := r.flattenPages()
	if err != nil {
		return nil, err
	}
	if index >= len(pages) {
		return nil, fmt.Errorf("parser: invalid page number %d: document has %d pages", index, len(pages))
	}

	return pages[index], nil
}

// flattenPages walks the page tree once and caches the ordered leaf list.
func (r *Reader) flattenPages() ([]*Dictionary, error) {
	root, err := r.GetPages()
	if err != nil {
		return nil, err
	}

	r.pagesMu.Lock()
	defer r.pagesMu.Unlock()

	if r.flatPages != nil {
		return r.flatPages, nil
	}

	var pages []*Dictionary
	visited := make(map[int]bool)

	var walk func(dict *Dictionary, num int)
	walk = func(dict *Dictionary, num int) {
		if num != 0 {
			if visited[num] {
				return
			}
			visited[num] = true
		}

		kidsObj := dict.Get("Kids")
		kids, isTreeNode := kidsObj.(*Array)
		typeName := dict.GetName("Type")

		if !isTreeNode || (typeName != nil && typeName.Value() == "Page") {
			pages = append(pages, dict)
			return
		}

		for _, kid := range kids.Elements() {
			ref, ok := kid.(*IndirectReference)
			if !ok {
				continue
			}
			obj, err := r.GetObject(ref.Number)
			if err != nil {
				continue
			}
			kidDict, ok := obj.(*Dictionary)
			if !ok {
				continue
			}
			walk(kidDict, ref.Number)
		}
	}

	walk(root, 0)
	r.flatPages = pages
	return pages, nil
}

// DecodeStream is the exported form of decodeStream, for callers outside
// this package (the analyzer's page-content and resource-stream reads).
func (r *Reader) DecodeStream(stream *Stream) ([]byte, error) {
	return r.decodeStream(stream)
}

// decodeStream applies the stream's filter chain and returns the decoded
// bytes. Image-specific filters (DCTDecode, CCITTFaxDecode, JPXDecode, ...)
// are left encoded - they are the analysis pipeline's concern, not the
// file-structure reader's.
func (r *Reader) decodeStream(stream *Stream) ([]byte, error) {
	data := stream.Content()

	for _, name := range filterNames(stream.GetFilter()) {
		switch name {
		case "FlateDecode", "Fl":
			decoded, err := (flateDecoder{}).Decode(data)
			if err != nil {
				return nil, fmt.Errorf("parser: FlateDecode: %w", err)
			}
			data = decoded
		default:
			// Unsupported or image filter at this layer: pass through raw.
		}
	}

	return data, nil
}

// objectsFromStream decodes and parses an entire object stream, caching the
// result so repeated lookups into the same stream don't re-decode it.
func (r *Reader) objectsFromStream(streamObjNum int) (map[int]PdfObject, error) {
	r.cacheMu.RLock()
	cached, ok := r.objStmCache[streamObjNum]
	r.cacheMu.RUnlock()
	if ok {
		return cached, nil
	}

	raw, err := r.GetObject(streamObjNum)
	if err != nil {
		return nil, fmt.Errorf("loading object stream %d: %w", streamObjNum, err)
	}
	stream, ok := raw.(*Stream)
	if !ok {
		return nil, fmt.Errorf("object %d is not a stream", streamObjNum)
	}

	decoded, err := r.decodeStream(stream)
	if err != nil {
		return nil, fmt.Errorf("decoding object stream %d: %w", streamObjNum, err)
	}

	n := int(stream.Dictionary().GetInteger("N"))
	first := int(stream.Dictionary().GetInteger("First"))

	p := &Parser{}
	objects, err := p.ParseObjectStream(decoded, n, first)
	if err != nil {
		return nil, fmt.Errorf("parsing object stream %d: %w", streamObjNum, err)
	}

	r.cacheMu.Lock()
	r.objStmCache[streamObjNum] = objects
	r.cacheMu.Unlock()

	return objects, nil
}

// parseXRefSection parses one cross-reference section (classic table or
// xref stream) at offset, merges its entries into r.xref (only filling
// object numbers not already set by a newer section), and follows /Prev
// and /XRefStm to merge earlier sections. visited guards against circular
// Prev chains.
func (r *Reader) parseXRefSection(offset int64, visited map[int64]bool) (*Dictionary, error) {
	if offset < 0 || offset >= int64(len(r.data)) {
		return nil, fmt.Errorf("parser: xref offset %d out of range", offset)
	}
	if visited[offset] {
		return nil, fmt.Errorf("parser: circular xref chain at offset %d", offset)
	}
	visited[offset] = true

	section := r.data[offset:]
	trimmed := bytes.TrimLeft(section, " \t\r\n\x00\x0c")
	if bytes.HasPrefix(trimmed, []byte("xref")) {
		return r.parseClassicXRefSection(section, visited)
	}
	return r.parseXRefStreamSection(offset, visited)
}

func (r *Reader) parseClassicXRefSection(section []byte, visited map[int64]bool) (*Dictionary, error) {
	lex := NewLexer(bytes.NewReader(section))

	tok, err := lex.NextToken()
	if err != nil || tok.Type != TokenKeyword || tok.Value != KeywordXref {
		return nil, fmt.Errorf("parser: expected xref keyword")
	}

	for {
		tok, err := lex.NextToken()
		if err != nil {
			return nil, fmt.Errorf("parser: unexpected end of xref section: %w", err)
		}
		if tok.Type == TokenKeyword && tok.Value == KeywordTrailer {
			break
		}
		if tok.Type != TokenInteger {
			return nil, fmt.Errorf("parser: expected xref subsection header, got %s", tok.String())
		}
		start, err := strconv.Atoi(tok.Value)
		if err != nil {
			return nil, fmt.Errorf("parser: invalid xref subsection start: %w", err)
		}

		countTok, err := lex.NextToken()
		if err != nil || countTok.Type != TokenInteger {
			return nil, fmt.Errorf("parser: expected xref subsection count")
		}
		count, err := strconv.Atoi(countTok.Value)
		if err != nil {
			return nil, fmt.Errorf("parser: invalid xref subsection count: %w", err)
		}

		for i := 0; i < count; i++ {
			offTok, err := lex.NextToken()
			if err != nil || offTok.Type != TokenInteger {
				return nil, fmt.Errorf("parser: malformed xref entry offset")
			}
			genTok, err := lex.NextToken()
			if err != nil || genTok.Type != TokenInteger {
				return nil, fmt.Errorf("parser: malformed xref entry generation")
			}
			flagTok, err := lex.NextToken()
			if err != nil || flagTok.Type != TokenKeyword {
				return nil, fmt.Errorf("parser: malformed xref entry flag")
			}

			objNum := start + i
			offVal, _ := strconv.ParseInt(offTok.Value, 10, 64)
			genVal, _ := strconv.Atoi(genTok.Value)

			if !r.xref.Has(objNum) {
				entryType := XRefEntryInUse
				if flagTok.Value == "f" {
					entryType = XRefEntryFree
				}
				r.xref.SetEntry(objNum, XRefEntry{Type: entryType, Offset: offVal, Generation: genVal})
			}
		}
	}

	op := NewObjectParser(lex)
	obj, err := op.ParseObject()
	if err != nil {
		return nil, fmt.Errorf("parser: invalid trailer dictionary: %w", err)
	}
	trailer, ok := obj.(*Dictionary)
	if !ok {
		return nil, fmt.Errorf("parser: trailer is not a dictionary")
	}

	r.mergeXRefChain(trailer, visited)
	return trailer, nil
}

func (r *Reader) parseXRefStreamSection(offset int64, visited map[int64]bool) (*Dictionary, error) {
	indirect, err := r.readIndirectObjectAt(offset)
	if err != nil {
		return nil, fmt.Errorf("parser: xref stream at %d: %w", offset, err)
	}
	stream, ok := indirect.Object.(*Stream)
	if !ok {
		return nil, fmt.Errorf("parser: object at xref stream offset %d is not a stream", offset)
	}

	dict := stream.Dictionary()
	decoded, err := r.decodeStream(stream)
	if err != nil {
		return nil, fmt.Errorf("parser: decoding xref stream: %w", err)
	}

	p := &Parser{}
	table, err := p.parseXRefStreamEntries(dict, decoded)
	if err != nil {
		return nil, fmt.Errorf("parser: parsing xref stream entries: %w", err)
	}

	for _, num := range table.Numbers() {
		if !r.xref.Has(num) {
			entry, _ := table.GetEntry(num)
			r.xref.SetEntry(num, entry)
		}
	}

	r.mergeXRefChain(dict, visited)
	return dict, nil
}

// mergeXRefChain follows /XRefStm (hybrid-reference files) and /Prev
// (incremental updates) from a section's trailer/stream dictionary,
// merging older entries without overwriting anything already present.
func (r *Reader) mergeXRefChain(dict *Dictionary, visited map[int64]bool) {
	if stm, ok := dict.Get("XRefStm").(*Integer); ok {
		_, _ = r.parseXRefSection(stm.Value(), visited)
	}
	if prev, ok := dict.Get("Prev").(*Integer); ok {
		_, _ = r.parseXRefSection(prev.Value(), visited)
	}
}

// rebuildXRefByScan is the recovery path: it scans the whole file for
// "N G obj" headers and rebuilds an xref table from scratch, then either
// reuses a literal trailer keyword if one is still readable, or synthesizes
// a trailer by finding the document's /Type /Catalog object directly.
func (r *Reader) rebuildXRefByScan() (*Dictionary, error) {
	table := NewXRefTable()
	data := r.data

	for i := 0; i < len(data); {
		if data[i] < '0' || data[i] > '9' {
			i++
			continue
		}
		if i > 0 && !isWhitespace(data[i-1]) {
			i++
			continue
		}

		objNum, gen, _, ok := splitObjHeader(data[i:])
		if !ok {
			i++
			continue
		}

		table.SetEntry(objNum, XRefEntry{Type: XRefEntryInUse, Offset: int64(i), Generation: gen})

		j := i
		for j < len(data) && data[j] >= '0' && data[j] <= '9' {
			j++
		}
		i = j + 1
	}

	if table.Size() == 0 {
		return nil, fmt.Errorf("parser: recovery scan found no objects")
	}
	r.xref = table

	if idx := bytes.LastIndex(data, []byte(KeywordTrailer)); idx >= 0 {
		lex := NewLexer(bytes.NewReader(data[idx+len(KeywordTrailer):]))
		op := NewObjectParser(lex)
		if obj, err := op.ParseObject(); err == nil {
			if dict, ok := obj.(*Dictionary); ok && dict.Has("Root") {
				return dict, nil
			}
		}
	}

	return r.synthesizeTrailer()
}

// synthesizeTrailer builds a minimal trailer for a file whose own trailer
// could not be recovered, by scanning every in-use object for /Type
// /Catalog.
func (r *Reader) synthesizeTrailer() (*Dictionary, error) {
	maxNum := 0
	rootNum := -1

	for _, num := range r.xref.Numbers() {
		if num > maxNum {
			maxNum = num
		}
		entry, _ := r.xref.GetEntry(num)
		if entry.Type != XRefEntryInUse {
			continue
		}
		indirect, err := r.readIndirectObjectAt(entry.Offset)
		if err != nil {
			continue
		}
		dict, ok := indirect.Object.(*Dictionary)
		if !ok {
			continue
		}
		if name := dict.GetName("Type"); name != nil && name.Value() == "Catalog" {
			rootNum = num
		}
	}

	if rootNum < 0 {
		return nil, fmt.Errorf("parser: recovery scan could not locate a document catalog")
	}

	trailer := NewDictionary()
	trailer.Set("Root", NewIndirectReference(rootNum, 0))
	trailer.SetInteger("Size", int64(maxNum+1))
	return trailer, nil
}

// readIndirectObjectAt extracts the indirect object starting at offset:
// "N G obj ... endobj", including its stream body if present. Stream
// boundaries are found by literal "stream"/"endstream" search rather than
// by tracking lexer byte positions, since PDF streams routinely hold binary
// data that is not valid PDF token syntax.
func (r *Reader) readIndirectObjectAt(offset int64) (*IndirectObject, error) {
	if offset < 0 || offset >= int64(len(r.data)) {
		return nil, fmt.Errorf("parser: object offset %d out of range", offset)
	}

	objNum, gen, body, ok := splitObjHeader(r.data[offset:])
	if !ok {
		return nil, fmt.Errorf("parser: malformed object header at offset %d", offset)
	}

	endIdx := bytes.Index(body, []byte(KeywordEndobj))
	if endIdx < 0 {
		endIdx = len(body)
	}
	objBody := body[:endIdx]

	streamIdx := bytes.Index(objBody, []byte(KeywordStream))
	if streamIdx < 0 {
		obj, err := parseObjectFromBytes(objBody)
		if err != nil {
			return nil, fmt.Errorf("object %d %d: %w", objNum, gen, err)
		}
		return NewIndirectObject(objNum, gen, obj), nil
	}

	dictObj, err := parseObjectFromBytes(objBody[:streamIdx])
	if err != nil {
		return nil, fmt.Errorf("stream dictionary for object %d %d: %w", objNum, gen, err)
	}
	dict, ok := dictObj.(*Dictionary)
	if !ok {
		return nil, fmt.Errorf("object %d %d: stream keyword without a preceding dictionary", objNum, gen)
	}

	contentStart := streamIdx + len(KeywordStream)
	if contentStart < len(objBody) && objBody[contentStart] == '\r' {
		contentStart++
	}
	if contentStart < len(objBody) && objBody[contentStart] == '\n' {
		contentStart++
	}

	rest := objBody[contentStart:]
	endStreamIdx := bytes.Index(rest, []byte(KeywordEndstream))
	if endStreamIdx < 0 {
		endStreamIdx = len(rest)
	}

	content := rest[:endStreamIdx]
	content = bytes.TrimSuffix(content, []byte("\r\n"))
	content = bytes.TrimSuffix(content, []byte("\n"))
	content = bytes.TrimSuffix(content, []byte("\r"))

	return NewIndirectObject(objNum, gen, NewStream(dict, content)), nil
}

// splitObjHeader parses the "N G obj" header at the start of data and
// returns the object number, generation, and the remaining bytes after the
// "obj" keyword.
func splitObjHeader(data []byte) (objNum, generation int, body []byte, ok bool) {
	i := skipWS(data, 0)

	start := i
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i == start {
		return 0, 0, nil, false
	}
	n1, err := strconv.Atoi(string(data[start:i]))
	if err != nil {
		return 0, 0, nil, false
	}

	i = skipWS(data, i)
	start = i
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		i++
	}
	if i == start {
		return 0, 0, nil, false
	}
	n2, err := strconv.Atoi(string(data[start:i]))
	if err != nil {
		return 0, 0, nil, false
	}

	i = skipWS(data, i)
	if i+3 > len(data) || string(data[i:i+3]) != KeywordObj {
		return 0, 0, nil, false
	}
	i += 3

	return n1, n2, data[i:], true
}

func skipWS(data []byte, i int) int {
	for i < len(data) && isWhitespace(data[i]) {
		i++
	}
	return i
}

func parseObjectFromBytes(b []byte) (PdfObject, error) {
	lex := NewLexer(bytes.NewReader(b))
	op := NewObjectParser(lex)
	return op.ParseObject()
}

func filterNames(obj PdfObject) []string {
	switch o := obj.(type) {
	case *Name:
		return []string{o.Value()}
	case *Array:
		names := make([]string, 0, o.Len())
		for _, elem := range o.Elements() {
			if n, ok := elem.(*Name); ok {
				names = append(names, n.Value())
			}
		}
		return names
	default:
		return nil
	}
}

// extractPDFVersion validates the "%PDF-X.Y" header and returns the version
// string.
func extractPDFVersion(data []byte) (string, error) {
	const prefix = "%PDF-"

	if len(data) == 0 {
		return "", fmt.Errorf("parser: invalid PDF header: file is empty")
	}
	if len(data) < len(prefix) || string(data[:len(prefix)]) != prefix {
		return "", fmt.Errorf("parser: invalid PDF header: file does not start with %q", prefix)
	}

	rest := data[len(prefix):]
	end := bytes.IndexAny(rest, "\r\n")
	if end < 0 {
		end = len(rest)
	}
	if end > 16 {
		end = 16
	}

	version := strings.TrimSpace(string(rest[:end]))
	if version == "" {
		return "", fmt.Errorf("parser: invalid PDF version: missing version number after %q", prefix)
	}
	return version, nil
}

// findStartXRef locates the last "startxref" keyword and returns the byte
// offset that follows it. PDF allows multiple startxref keywords (one per
// incremental update); only the last one, pointing at the newest xref
// section, matters for opening the file.
func findStartXRef(data []byte) (int64, error) {
	idx := bytes.LastIndex(data, []byte(KeywordStartxref))
	if idx < 0 {
		return 0, fmt.Errorf("parser: startxref keyword not found")
	}

	rest := data[idx+len(KeywordStartxref):]
	lex := NewLexer(bytes.NewReader(rest))
	tok, err := lex.NextToken()
	if err != nil || tok.Type != TokenInteger {
		return 0, fmt.Errorf("parser: startxref keyword not followed by a byte offset")
	}

	offset, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parser: invalid startxref offset: %w", err)
	}
	return offset, nil
}
