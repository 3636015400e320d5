package feed

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Kind names the input format a line was decoded from.
type Kind string

const (
	KindEnvelope Kind = "envelope"
	KindFlat     Kind = "flat"
	KindNested   Kind = "nested"
	KindRaw      Kind = "raw"
)

var (
	// ErrEmpty is returned for blank lines.
	ErrEmpty = errors.New("empty line")
	// ErrNoText is returned for JSON objects carrying no message text.
	ErrNoText = errors.New("no message text")
)

// maxLineSize bounds a single input line. Decoder logs can be long.
const maxLineSize = 16 * 1024 * 1024

// Decode turns one input line into a Message. Lines that do not start
// with '{' are taken as raw report text.
func Decode(line []byte) (*Message, Kind, error) {
	s := strings.TrimSpace(string(line))
	if s == "" {
		return nil, "", ErrEmpty
	}
	if !strings.HasPrefix(s, "{") {
		return &Message{Text: s}, KindRaw, nil
	}

	var root map[string]any
	if err := json.Unmarshal([]byte(s), &root); err != nil {
		return nil, "", fmt.Errorf("decode json: %w", err)
	}

	// 1) Envelope
	if _, ok := root["message"].(map[string]any); ok {
		var e Envelope
		if err := json.Unmarshal([]byte(s), &e); err == nil {
			if msg := e.ToMessage(); msg != nil && strings.TrimSpace(msg.Text) != "" {
				return msg, KindEnvelope, nil
			}
		}
	}

	// 2) Flat message
	var m Message
	if err := json.Unmarshal([]byte(s), &m); err == nil && strings.TrimSpace(m.Text) != "" {
		return &m, KindFlat, nil
	}

	// 3) Decoder logs
	if msg := messageFromNested(root); msg != nil {
		return msg, KindNested, nil
	}

	return nil, "", ErrNoText
}

// messageFromNested tries the paths used by dumpvdl2 / dumphfdl logs.
func messageFromNested(root map[string]any) *Message {
	text := firstString(root,
		"message.text",
		"msg_text",
		"acars.text",
		"acars.message.text",
		"vdl2.avlc.acars.msg_text",
		"vdl2.avlc.acars.message.text",
		"hfdl.lpdu.hfnpdu.acars.msg_text",
		"hfdl.lpdu.hfnpdu.acars.message.text",
	)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	ts := firstString(root, "timestamp", "message.timestamp")
	if ts == "" {
		// Decoder logs carry epoch seconds instead.
		sec := firstInt64(root, "vdl2.t.sec", "hfdl.t.sec", "t.sec")
		usec := firstInt64(root, "vdl2.t.usec", "hfdl.t.usec", "t.usec")
		if sec > 0 {
			ts = time.Unix(sec, usec*1000).UTC().Format(time.RFC3339Nano)
		}
	}

	return &Message{
		ID:        FlexInt64(firstInt64(root, "id", "message.id")),
		Timestamp: ts,
		Source:    firstString(root, "source", "vdl2.app.name", "hfdl.app.name", "app.name"),
		Station:   firstString(root, "station", "vdl2.station", "hfdl.station"),
		Text:      text,
	}
}

func firstString(root map[string]any, paths ...string) string {
	for _, p := range paths {
		if v, ok := deepGet(root, p); ok {
			switch t := v.(type) {
			case string:
				if strings.TrimSpace(t) != "" {
					return t
				}
			case float64:
				if t == float64(int64(t)) {
					return strconv.FormatInt(int64(t), 10)
				}
				return strconv.FormatFloat(t, 'f', -1, 64)
			}
		}
	}
	return ""
}

func firstInt64(root map[string]any, paths ...string) int64 {
	for _, p := range paths {
		if v, ok := deepGet(root, p); ok {
			switch t := v.(type) {
			case float64:
				return int64(t)
			case string:
				if i, err := strconv.ParseInt(strings.TrimSpace(t), 10, 64); err == nil {
					return i
				}
			}
		}
	}
	return 0
}

// deepGet walks a map[string]any using a dotted path: "a.b.c".
func deepGet(root map[string]any, dotted string) (any, bool) {
	var cur any = root
	for _, part := range strings.Split(dotted, ".") {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = node[part]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// LineError is a decode failure confined to one input line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// Reader decodes a stream of lines.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Reader{sc: sc}
}

// Next returns the next non-blank line decoded. It returns io.EOF when the
// input is exhausted. A *LineError concerns only the current line and the
// caller may keep reading; any other error is final.
func (r *Reader) Next() (*Message, Kind, error) {
	for r.sc.Scan() {
		r.line++
		msg, kind, err := Decode(r.sc.Bytes())
		if errors.Is(err, ErrEmpty) {
			continue
		}
		if err != nil {
			return nil, "", &LineError{Line: r.line, Err: err}
		}
		return msg, kind, nil
	}
	if err := r.sc.Err(); err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return nil, "", io.EOF
}

// Line returns the number of lines read so far.
func (r *Reader) Line() int { return r.line }
