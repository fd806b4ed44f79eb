// Package requests implements the line-oriented JSON seam a host application
// uses to drive palconv: one request per stdin line, one response per stdout
// line.
package requests

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/sirupsen/logrus"

	"palconv/dispatch"
	"palconv/encode"
	"palconv/palette"
)

// Request asks for one palette file to be decoded, and optionally exported
// to GPL.
type Request struct {
	ID     string `json:"id,omitempty"`
	Path   string `json:"path"`
	Format string `json:"format,omitempty"` // explicit tag; empty selects by extension
	Export string `json:"export,omitempty"` // GPL output path
}

// Response mirrors a Request. Colors is [r, g, b, a] per color. Error is set
// when the file was rejected as a whole; Kind is then one of "structural",
// "unsupported" or "io".
type Response struct {
	ID          string               `json:"id,omitempty"`
	Path        string               `json:"path"`
	Format      string               `json:"format,omitempty"`
	Name        string               `json:"name"`
	Colors      [][4]float64         `json:"colors"`
	Diagnostics []palette.Diagnostic `json:"diagnostics,omitempty"`
	Exported    string               `json:"exported,omitempty"`
	Error       string               `json:"error,omitempty"`
	Kind        string               `json:"kind,omitempty"`
}

// Read consumes newline-delimited JSON requests, emitting them onto out.
// Lines that do not parse are logged and skipped. out is closed at EOF.
func Read(r io.Reader, out chan<- Request, log logrus.FieldLogger) {
	defer close(out)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			log.WithError(err).Warn("request parse")
			continue
		}
		out <- req
	}
	if err := sc.Err(); err != nil {
		log.WithError(err).Error("request scanner")
	}
}

// Handle decodes one request.
func Handle(req Request) Response {
	resp := Response{ID: req.ID, Path: req.Path, Colors: [][4]float64{}}

	var (
		res palette.Result
		f   palette.Format
		err error
	)
	if req.Format != "" {
		f, err = palette.ParseFormat(req.Format)
		if err == nil {
			res, err = dispatch.DecodeFileAs(req.Path, f)
		}
	} else {
		res, f, err = dispatch.DecodeFile(req.Path)
	}
	if f != palette.FormatUnknown {
		resp.Format = f.String()
	}
	resp.Name = res.Name
	resp.Diagnostics = res.Diagnostics
	for _, c := range res.Colors {
		resp.Colors = append(resp.Colors, c.Slice())
	}
	if err != nil {
		resp.Error = err.Error()
		resp.Kind = palette.Kind(err)
		return resp
	}
	if req.Export != "" {
		if err := encode.GPLFile(req.Export, res.Palette); err != nil {
			resp.Error = err.Error()
			resp.Kind = palette.Kind(err)
			return resp
		}
		resp.Exported = req.Export
	}
	return resp
}

// Serve answers every request read from r on w until r is exhausted.
func Serve(r io.Reader, w io.Writer, log logrus.FieldLogger) error {
	reqs := make(chan Request, 16)
	go Read(r, reqs, log)

	enc := json.NewEncoder(w)
	for req := range reqs {
		resp := Handle(req)
		entry := log.WithFields(logrus.Fields{"path": req.Path, "colors": len(resp.Colors)})
		if resp.Error != "" {
			entry.WithField("kind", resp.Kind).Warn(resp.Error)
		} else {
			entry.Debug("decoded")
		}
		if err := enc.Encode(resp); err != nil {
			// Drain so the reader goroutine can finish.
			for range reqs {
			}
			return err
		}
	}
	return nil
}
