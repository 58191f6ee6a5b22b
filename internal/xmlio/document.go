// Package xmlio reads and writes the genome, plan, and Han documents
// spec.md §6 describes (the globals document has types here but no reader
// or writer), using encoding/xml struct tags in the
// style of the retrieval pack's RDF/XML OWL loader (kortschak-smeargol's
// internal/owl), adapted from RDF terms to Stylus's own document shapes.
package xmlio

import (
	"encoding/xml"
	"io"
)

const namespace = "http://biologicinstitute.net/stylus/1.3"

// GenomeDoc is the root element of a genome document: its base sequence
// and the gene ranges compiled against named Han glyphs.
type GenomeDoc struct {
	XMLName xml.Name  `xml:"genome"`
	UUID    string    `xml:"uuid,attr"`
	Bases   string    `xml:"bases"`
	Genes   []GeneDoc `xml:"gene"`
}

// GeneDoc names one gene's base range and target Han glyph.
type GeneDoc struct {
	Name      int    `xml:"name,attr"`
	BaseFirst int    `xml:"baseFirst,attr"`
	BaseLast  int    `xml:"baseLast,attr"`
	HanCode   string `xml:"han,attr"` // Unicode code point, e.g. "U+4E00"
}

// PlanDoc is the root element of a plan document: the trial condition,
// termination condition, and seed a run replays from.
type PlanDoc struct {
	XMLName     xml.Name        `xml:"plan"`
	Seed        uint64          `xml:"seed,attr"`
	Steps       int             `xml:"steps,attr"`
	Condition   TrialConditionDoc `xml:"condition"`
}

// TrialConditionDoc mirrors genome.TrialCondition's XML form.
type TrialConditionDoc struct {
	Mode      string  `xml:"mode,attr"` // "decrease" | "increase" | "maintain"
	Tolerance float64 `xml:"tolerance,attr,omitempty"`
}

// HanDoc is the root element of a Han reference glyph document.
type HanDoc struct {
	XMLName             xml.Name       `xml:"han"`
	Unicode             string         `xml:"unicode,attr"`
	MinimumStrokeLength float64        `xml:"minimumStrokeLength,attr"`
	Strokes             []HanStrokeDoc `xml:"stroke"`
	Groups              []HanGroupDoc  `xml:"group"`
	Overlaps            []HanOverlapDoc `xml:"overlap"`
}

// HanStrokeDoc is one reference stroke's forward point sequence; the
// reverse ordering is derived at load time rather than stored twice.
type HanStrokeDoc struct {
	Points []HanPointDoc `xml:"point"`
}

// HanPointDoc is one control point along a Han stroke.
type HanPointDoc struct {
	X                  float64 `xml:"x,attr"`
	Y                  float64 `xml:"y,attr"`
	FractionalDistance float64 `xml:"distance,attr"`
}

// HanGroupDoc is a Han-defined subset of strokes, by index.
type HanGroupDoc struct {
	StrokeIndices []int `xml:"stroke"`
}

// HanOverlapDoc is one legal or required crossing between two strokes.
type HanOverlapDoc struct {
	First    int  `xml:"first,attr"`
	Second   int  `xml:"second,attr"`
	Required bool `xml:"required,attr"`
}

// GlobalsDoc is the root element of a globals document: per-channel score
// weights and setpoints. Nothing in this module reads one or converts it
// to score.Weight; genomes use score.DefaultWeights.
type GlobalsDoc struct {
	XMLName xml.Name        `xml:"globals"`
	Weights []WeightDoc     `xml:"weight"`
}

// WeightDoc names one scoring channel's weight and setpoint.
type WeightDoc struct {
	Channel  string  `xml:"channel,attr"`
	Setpoint float64 `xml:"setpoint,attr"`
	Weight   float64 `xml:"weight,attr"`
}

// ReadGenome decodes a genome document from r.
func ReadGenome(r io.Reader) (*GenomeDoc, error) {
	var doc GenomeDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteGenome encodes doc to w as an indented XML document.
func WriteGenome(w io.Writer, doc *GenomeDoc) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}

// ReadPlan decodes a plan document from r.
func ReadPlan(r io.Reader) (*PlanDoc, error) {
	var doc PlanDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WritePlan encodes doc to w as an indented XML document.
func WritePlan(w io.Writer, doc *PlanDoc) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}

// ReadHan decodes a Han reference glyph document from r.
func ReadHan(r io.Reader) (*HanDoc, error) {
	var doc HanDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteHan encodes doc to w as an indented XML document.
func WriteHan(w io.Writer, doc *HanDoc) error {
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(doc)
}
