package biometric

import (
	"encoding/binary"
	"errors"
	"math"
)

// DefaultDimensions is the embedding length produced by the external face
// feature extractor.
const DefaultDimensions = 128

const elementSize = 4 // float32

var (
	// ErrInvalidVector is an exported constant or variable used by the comparison step.
	ErrInvalidVector = errors.New("invalid feature vector")
	// ErrDimensionMismatch is an exported constant or variable used by the comparison step.
	ErrDimensionMismatch = errors.New("feature vector dimension mismatch")
)

// Vector is a fixed-length facial feature embedding. The package treats the
// contents as opaque beyond length and distance.
type Vector []float32

// DecodeVector decodes a little-endian float32 byte buffer as stored in the
// credential store's binary column. The buffer length must be a multiple of
// the element size.
func DecodeVector(buf []byte) (Vector, error) {
	if len(buf) == 0 || len(buf)%elementSize != 0 {
		return nil, ErrInvalidVector
	}

	v := make(Vector, len(buf)/elementSize)
	for i := range v {
		bits := binary.LittleEndian.Uint32(buf[i*elementSize:])
		v[i] = math.Float32frombits(bits)
	}
	return v, nil
}

// EncodeVector is the inverse of [DecodeVector].
func EncodeVector(v Vector) []byte {
	buf := make([]byte, len(v)*elementSize)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*elementSize:], math.Float32bits(f))
	}
	return buf
}

// Distance returns the Euclidean distance between two vectors of equal
// length: sqrt(Σ (a_i - b_i)^2). Symmetric; Distance(a, a) == 0.
func Distance(a, b Vector) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrDimensionMismatch
	}

	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Config defines a public type used by biometric APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Dimensions int
	Threshold  float64
}

// Comparator decides match/no-match from two feature vectors. Pure and
// deterministic; safe for concurrent use.
type Comparator struct {
	config Config
}

// NewComparator describes the newcomparator operation and its observable behavior.
//
// NewComparator may return an error when input validation fails.
func NewComparator(cfg Config) (*Comparator, error) {
	if cfg.Dimensions <= 0 {
		return nil, errors.New("dimensions must be positive")
	}
	if cfg.Threshold <= 0 {
		return nil, errors.New("threshold must be positive")
	}
	return &Comparator{config: cfg}, nil
}

// Validate checks that v has the configured number of dimensions.
func (c *Comparator) Validate(v Vector) error {
	if len(v) != c.config.Dimensions {
		return ErrDimensionMismatch
	}
	return nil
}

// Compare returns whether the two vectors are within the match threshold,
// along with the computed distance. Either vector failing shape validation
// is an error, never a silent no-match.
func (c *Comparator) Compare(a, b Vector) (bool, float64, error) {
	if err := c.Validate(a); err != nil {
		return false, 0, err
	}
	if err := c.Validate(b); err != nil {
		return false, 0, err
	}

	dist, err := Distance(a, b)
	if err != nil {
		return false, 0, err
	}
	return dist < c.config.Threshold, dist, nil
}
