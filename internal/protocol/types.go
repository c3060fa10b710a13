package protocol

// SystemReport is the normalized description of one machine. Every field
// carries either a measured value or its fallback.
type SystemReport struct {
	OS           string   `json:"os" yaml:"os"`
	CPU          string   `json:"cpu" yaml:"cpu"`
	RAM          string   `json:"ram" yaml:"ram"`                     // "16 GB"
	StorageUsed  string   `json:"storage_used" yaml:"storage_used"`   // "412 GB"
	StorageTotal string   `json:"storage_total" yaml:"storage_total"` // "931 GB"
	GPU          []string `json:"gpu" yaml:"gpu"`                     // "<name> (<n> <unit>)"
	DirectX      string   `json:"directx" yaml:"directx"`
}

// Fallback values used when a source cannot be read.
const (
	FallbackOS      = "Unknown OS"
	FallbackCPU     = "Unknown CPU"
	FallbackBytes   = "0 B"
	FallbackDirectX = "Unknown"
)

// FallbackReport returns a report with every field set to its fallback.
func FallbackReport() SystemReport {
	return SystemReport{
		OS:           FallbackOS,
		CPU:          FallbackCPU,
		RAM:          FallbackBytes,
		StorageUsed:  FallbackBytes,
		StorageTotal: FallbackBytes,
		GPU:          []string{},
		DirectX:      FallbackDirectX,
	}
}

// Normalize replaces a nil GPU list so the report never serializes it as null.
func (r SystemReport) Normalize() SystemReport {
	if r.GPU == nil {
		r.GPU = []string{}
	}
	return r
}
