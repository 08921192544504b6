package ingest

import (
	"io"

	"power_analysis/internal/model"
)

// Stats reports how many data rows a parse saw and how many it dropped for
// missing or unparseable fields.
type Stats struct {
	Rows    int
	Dropped int
}

// Parser reads a raw meter export and returns cleaned observations.
type Parser interface {
	Parse(r io.Reader) ([]model.Observation, Stats, error)
}
