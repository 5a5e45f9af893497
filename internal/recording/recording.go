// Package recording provides recording and replay of guidance sessions.
//
// A recording is a JSON Lines file: the first line is a LogHeader, every
// following line a FrameRecord.
package recording

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/pathguard/internal/engine"
	"github.com/banshee-data/pathguard/internal/fsutil"
	"github.com/banshee-data/pathguard/internal/scene"
	"github.com/banshee-data/pathguard/internal/steps"
)

// FileExtension is the extension for session recordings.
const FileExtension = ".pgrec"

// FormatVersion is written to every header.
const FormatVersion = "1.0"

// ErrClosed is returned when recording to a closed Recorder.
var ErrClosed = errors.New("recorder is closed")

// LogHeader contains metadata about a recorded session.
type LogHeader struct {
	Version   string                   `json:"version"`
	CreatedNs int64                    `json:"created_ns"`
	SessionID string                   `json:"session_id"`
	Device    string                   `json:"device,omitempty"`
	ProbeGrid map[string]scene.Point2D `json:"probe_grid,omitempty"`
}

// NewLogHeader builds a header for a session calibrated with grid.
func NewLogHeader(sessionID string, created time.Time, grid scene.ProbeGrid) LogHeader {
	h := LogHeader{Version: FormatVersion, CreatedNs: created.UnixNano(), SessionID: sessionID}
	if len(grid) > 0 {
		h.ProbeGrid = make(map[string]scene.Point2D, len(grid))
		for id, pt := range grid {
			h.ProbeGrid[string(id)] = pt
		}
	}
	return h
}

// Grid returns the header's calibration as a validated probe grid.
func (h LogHeader) Grid() (scene.ProbeGrid, error) {
	if len(h.ProbeGrid) == 0 {
		return nil, nil
	}
	return scene.NewProbeGrid(h.ProbeGrid)
}

// PoseRecord is a pose as [x y z] and [w x y z].
type PoseRecord struct {
	Translation [3]float64 `json:"t"`
	Rotation    [4]float64 `json:"q"`
}

// NewPoseRecord captures a pose.
func NewPoseRecord(p scene.Pose) PoseRecord {
	return PoseRecord{
		Translation: [3]float64{p.Translation.X, p.Translation.Y, p.Translation.Z},
		Rotation:    [4]float64{p.Rotation.Real, p.Rotation.Imag, p.Rotation.Jmag, p.Rotation.Kmag},
	}
}

// Pose converts the record back to a scene pose.
func (p PoseRecord) Pose() scene.Pose {
	return scene.Pose{
		Translation: r3.Vec{X: p.Translation[0], Y: p.Translation[1], Z: p.Translation[2]},
		Rotation:    quat.Number{Real: p.Rotation[0], Imag: p.Rotation[1], Jmag: p.Rotation[2], Kmag: p.Rotation[3]},
	}
}

// ProbeRecord is one sampled probe.
type ProbeRecord struct {
	Position [3]float64 `json:"p"`
	Pose     PoseRecord `json:"pose"`
}

// ImageRecord is a raw image plane. Depth planes hold little-endian 16-bit
// millimetre samples.
type ImageRecord struct {
	Width  int    `json:"w"`
	Height int    `json:"h"`
	Data   []byte `json:"data"`
}

// FrameRecord is one recorded frame.
type FrameRecord struct {
	Index       int                    `json:"index"`
	TimestampNs int64                  `json:"ts_ns"`
	Pose        PoseRecord             `json:"pose"`
	Semantic    *ImageRecord           `json:"semantic,omitempty"`
	Depth       *ImageRecord           `json:"depth,omitempty"`
	Probes      map[string]ProbeRecord `json:"probes,omitempty"`
}

// NewFrameRecord captures an engine frame. Probes are sampled against grid
// so the recording stores world points rather than a live hit tester.
func NewFrameRecord(index int, ts time.Time, f engine.Frame, grid scene.ProbeGrid) FrameRecord {
	rec := FrameRecord{
		Index:       index,
		TimestampNs: ts.UnixNano(),
		Pose:        NewPoseRecord(f.Pose),
	}
	if f.Semantic != nil {
		rec.Semantic = &ImageRecord{Width: f.Semantic.Width, Height: f.Semantic.Height, Data: f.Semantic.Pix}
	}
	if f.Depth != nil {
		rec.Depth = &ImageRecord{Width: f.Depth.Width, Height: f.Depth.Height, Data: f.Depth.Bytes()}
	}
	if f.Probes != nil && grid.Calibrated() {
		if points, err := f.Probes.Sample(grid); err == nil {
			rec.Probes = make(map[string]ProbeRecord, len(points))
			for id, wp := range points {
				rec.Probes[string(id)] = ProbeRecord{
					Position: [3]float64{wp.Position.X, wp.Position.Y, wp.Position.Z},
					Pose:     NewPoseRecord(wp.Pose),
				}
			}
		}
	}
	return rec
}

// Frame rebuilds the engine input. A frame recorded without probes has a nil
// sampler, which the engine treats as depth not yet available.
func (r FrameRecord) Frame() (engine.Frame, error) {
	f := engine.Frame{Pose: r.Pose.Pose()}
	if r.Semantic != nil {
		f.Semantic = &scene.SemanticImage{Width: r.Semantic.Width, Height: r.Semantic.Height, Pix: r.Semantic.Data}
	}
	if r.Depth != nil {
		depth, err := scene.DepthImageFromBytes(r.Depth.Width, r.Depth.Height, r.Depth.Data)
		if err != nil {
			return engine.Frame{}, fmt.Errorf("frame %d: %w", r.Index, err)
		}
		f.Depth = depth
	}
	if r.Probes != nil {
		points := make(scene.ProbePoints, len(r.Probes))
		for id, p := range r.Probes {
			if _, _, err := scene.ParseProbeID(id); err != nil {
				return engine.Frame{}, fmt.Errorf("frame %d: %w", r.Index, err)
			}
			points[scene.ProbeID(id)] = scene.WorldPoint{
				Position: r3.Vec{X: p.Position[0], Y: p.Position[1], Z: p.Position[2]},
				Pose:     p.Pose.Pose(),
			}
		}
		f.Probes = steps.StaticSampler{Points: points}
	}
	return f, nil
}

// Recorder writes FrameRecords to a recording.
type Recorder struct {
	enc    *json.Encoder
	closer io.Closer

	frameCount int
	mu         sync.Mutex
	closed     bool
}

// NewRecorder writes the header to w and returns a recorder that appends
// frames to it. Closing the recorder closes w if it is an io.Closer.
func NewRecorder(w io.Writer, header LogHeader) (*Recorder, error) {
	if header.Version == "" {
		header.Version = FormatVersion
	}
	r := &Recorder{enc: json.NewEncoder(w)}
	if c, ok := w.(io.Closer); ok {
		r.closer = c
	}
	if err := r.enc.Encode(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	return r, nil
}

// Create opens path on fs and starts a recording there.
func Create(fs fsutil.FileSystem, path string, header LogHeader) (*Recorder, error) {
	f, err := fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create recording: %w", err)
	}
	r, err := NewRecorder(f, header)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Record appends one frame.
func (r *Recorder) Record(rec FrameRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}
	if err := r.enc.Encode(rec); err != nil {
		return fmt.Errorf("failed to write frame %d: %w", rec.Index, err)
	}
	r.frameCount++
	return nil
}

// FrameCount returns the number of frames recorded.
func (r *Recorder) FrameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frameCount
}

// Close finalises the recording.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.closed = true
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Replayer reads FrameRecords from a recording.
type Replayer struct {
	dec    *json.Decoder
	closer io.Closer
	header LogHeader
	next   int
}

// NewReplayer reads the header from rd.
func NewReplayer(rd io.Reader) (*Replayer, error) {
	r := &Replayer{dec: json.NewDecoder(rd)}
	if c, ok := rd.(io.Closer); ok {
		r.closer = c
	}
	if err := r.dec.Decode(&r.header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if r.header.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported recording version %q", r.header.Version)
	}
	return r, nil
}

// Open opens a recording on fs.
func Open(fs fsutil.FileSystem, path string) (*Replayer, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording: %w", err)
	}
	r, err := NewReplayer(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

// Header returns the recording header.
func (r *Replayer) Header() LogHeader {
	return r.header
}

// ReadFrame returns the next frame, or io.EOF after the last one.
func (r *Replayer) ReadFrame() (FrameRecord, error) {
	var rec FrameRecord
	if err := r.dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return FrameRecord{}, io.EOF
		}
		return FrameRecord{}, fmt.Errorf("failed to read frame after %d: %w", r.next, err)
	}
	r.next++
	return rec, nil
}

// Close releases the underlying reader.
func (r *Replayer) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}
