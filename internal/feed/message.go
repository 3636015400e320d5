// Package feed decodes the input lines fed to the report extractor.
//
// A line may be any of:
//  1. Envelope:      {"message":{...}, "station":{...}, "source":{...}}
//  2. Flat message:  {"id":1,"timestamp":"...","text":"METAR ..."}
//  3. Decoder logs:  dumpvdl2 / dumphfdl JSON with the text nested deep
//  4. Raw text:      the bulletin or report itself
package feed

import (
	"encoding/json"
	"strconv"
	"time"
)

// FlexInt64 handles JSON ids that can be either string or number.
// Unparseable ids decode as zero.
type FlexInt64 int64

func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	var i int64
	if err := json.Unmarshal(data, &i); err == nil {
		*f = FlexInt64(i)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil && s != "" {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			*f = FlexInt64(i)
			return nil
		}
	}

	*f = 0
	return nil
}

// Message is one unit of feed text, carrying one or more reports.
type Message struct {
	ID        FlexInt64 `json:"id,omitempty" yaml:"id,omitempty"`
	Timestamp string    `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
	Source    string    `json:"source,omitempty" yaml:"source,omitempty"`
	Station   string    `json:"station,omitempty" yaml:"station,omitempty"` // Receiving ground station
	Text      string    `json:"text" yaml:"text"`
}

// Time parses Timestamp as RFC 3339. ok is false when it is empty or
// malformed.
func (m *Message) Time() (t time.Time, ok bool) {
	if m.Timestamp == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, m.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

// Envelope is the wrapped feed format where the message is nested inside
// a "message" field with metadata at the top level.
type Envelope struct {
	Source  *EnvelopeSource  `json:"source,omitempty"`
	Station *EnvelopeStation `json:"station,omitempty"`
	Message *EnvelopeMessage `json:"message,omitempty"`
}

// EnvelopeSource names the feed application.
type EnvelopeSource struct {
	Name        string `json:"name,omitempty"`
	Application string `json:"application,omitempty"`
}

// EnvelopeStation identifies the receiving ground station.
type EnvelopeStation struct {
	Ident              string `json:"ident,omitempty"`
	NearestAirportIcao string `json:"nearest_airport_icao,omitempty"`
}

// EnvelopeMessage is the inner message of an Envelope.
type EnvelopeMessage struct {
	ID        FlexInt64 `json:"id"`
	Timestamp string    `json:"timestamp"`
	Text      string    `json:"text"`
}

// ToMessage flattens the envelope. It returns nil when there is no inner
// message.
func (e *Envelope) ToMessage() *Message {
	if e.Message == nil {
		return nil
	}

	msg := &Message{
		ID:        e.Message.ID,
		Timestamp: e.Message.Timestamp,
		Text:      e.Message.Text,
	}
	if e.Source != nil {
		msg.Source = e.Source.Name
		if msg.Source == "" {
			msg.Source = e.Source.Application
		}
	}
	if e.Station != nil {
		msg.Station = e.Station.Ident
		if msg.Station == "" {
			msg.Station = e.Station.NearestAirportIcao
		}
	}
	return msg
}
