package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/experiment"
)

type Data struct {
	Name       string             `json:"name"`
	Integrator string             `json:"integrator"`
	Physics    dynamo.Config      `json:"physics"`
	Steps      int                `json:"steps"`
	Time       float64            `json:"time"`
	Merges     []dynamo.Merge     `json:"merges"`
	Metrics    map[string]float64 `json:"metrics"`
	Frames     []experiment.Frame `json:"frames"`
}

func JSON(w io.Writer, data *Data) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
