package report

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/meshstat/internal/config"
)

// Writer renders details in the configured format.
type Writer struct {
	Format   string
	Language language.Tag
}

// NewWriter creates a writer from report settings.
func NewWriter(cfg config.ReportConfig) (*Writer, error) {
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, fmt.Errorf("report.language %q: %w", cfg.Language, err)
	}
	switch cfg.Format {
	case "", "text", "yaml":
	default:
		return nil, fmt.Errorf("unknown report format %q", cfg.Format)
	}
	return &Writer{Format: cfg.Format, Language: tag}, nil
}

// Write renders d to w.
func (rw *Writer) Write(w io.Writer, d Details) error {
	if rw.Format == "yaml" {
		return WriteYAML(w, d)
	}
	return WriteText(w, d, rw.Language)
}

// WriteYAML renders d as a YAML document.
func WriteYAML(w io.Writer, d Details) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

// WriteText renders d as an aligned, locale-formatted listing.
func WriteText(w io.Writer, d Details, tag language.Tag) error {
	t := newText(tag, d.Precision)

	if d.Source != "" {
		t.add("Source", d.Source)
	}
	t.add("Vertices", t.p.Sprintf("%d", d.Vertices))
	t.add("Triangles", t.p.Sprintf("%d", d.Triangles))
	t.add("Meshes", t.p.Sprintf("%d", d.Meshes))
	t.add("Size", t.p.Sprintf("%v × %v × %v", t.dec(d.Size.X), t.dec(d.Size.Y), t.dec(d.Size.Z)))
	t.add("Surface area", t.p.Sprint(t.dec(d.SurfaceArea)))
	t.add("Volume", t.p.Sprint(t.dec(d.Volume)))
	if !d.Modified.IsZero() {
		t.add("File size", t.p.Sprintf("%v MB", t.dec(d.FileSizeMB)))
		t.add("Modified", d.Modified.Format("2006-01-02 15:04:05 MST"))
	}
	t.camera(d.Camera)
	if err := t.flush(w); err != nil {
		return err
	}

	if len(d.Skipped) > 0 {
		if _, err := t.p.Fprintf(w, "\nSkipped %d node(s):\n", len(d.Skipped)); err != nil {
			return err
		}
		for _, s := range d.Skipped {
			if _, err := fmt.Fprintf(w, "  %s: %s\n", s.Path, s.Reason); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteCamera renders only the camera placement of d.
func (rw *Writer) WriteCamera(w io.Writer, d Details) error {
	if rw.Format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(d.Camera); err != nil {
			return fmt.Errorf("encoding camera: %w", err)
		}
		return enc.Close()
	}
	t := newText(rw.Language, d.Precision)
	t.camera(d.Camera)
	return t.flush(w)
}

type text struct {
	p     *message.Printer
	scale int
	lines [][2]string
}

func newText(tag language.Tag, precision int) *text {
	return &text{p: message.NewPrinter(tag), scale: precision}
}

func (t *text) dec(v float64) number.Formatter {
	return number.Decimal(v, number.Scale(t.scale))
}

func (t *text) add(label, value string) {
	t.lines = append(t.lines, [2]string{label, value})
}

func (t *text) point(a Axes) string {
	return t.p.Sprintf("(%v, %v, %v)", t.dec(a.X), t.dec(a.Y), t.dec(a.Z))
}

func (t *text) camera(c Camera) {
	t.add("Camera", t.point(c.Position))
	t.add("Look at", t.point(c.LookAt))
	t.add("Distance", t.p.Sprint(t.dec(c.Distance)))
	t.add("Orbit", t.p.Sprintf("pitch %v°, yaw %v°", t.dec(c.Pitch), t.dec(c.Yaw)))
}

// flush writes the collected lines with labels padded to one column.
func (t *text) flush(w io.Writer) error {
	width := 0
	for _, l := range t.lines {
		width = max(width, len(l[0]))
	}
	for _, l := range t.lines {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width+1, l[0]+":", l[1]); err != nil {
			return err
		}
	}
	t.lines = t.lines[:0]
	return nil
}
