package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/san-kum/attractor/internal/attractor"
)

// Record is the JSON metadata written next to every accepted attractor.
// It holds enough to regenerate the orbit.
type Record struct {
	Index        int                    `json:"index"`
	Map          string                 `json:"map"`
	Coefficients attractor.Coefficients `json:"coefficients"`
	X            float64                `json:"x"`
	Y            float64                `json:"y"`
	Iterations   int                    `json:"iterations"`
	Lyapunov     float64                `json:"lyapunov"`
	Exponent     float64                `json:"exponent"`
	Updates      int                    `json:"updates"`
	Attempts     int                    `json:"attempts"`
}

func NewRecord(index int, out attractor.Outcome, attempts int) Record {
	return Record{
		Index:        index,
		Map:          "trig",
		Coefficients: out.Coefficients,
		X:            out.Initial.X,
		Y:            out.Initial.Y,
		Iterations:   out.Iterations,
		Lyapunov:     out.Lyapunov,
		Exponent:     out.Exponent(),
		Updates:      out.Updates,
		Attempts:     attempts,
	}
}

func (r Record) Initial() attractor.Point { return attractor.Point{X: r.X, Y: r.Y} }

func WriteJSON(path string, r Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func ReadJSON(path string) (Record, error) {
	var r Record
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("parse %s: %w", path, err)
	}
	return r, nil
}
