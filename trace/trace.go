/*
 * trace.go, part of gopdft.
 *
 * Copyright 2026 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

/*Package trace archives the per-cycle records of a goPDFT inversion as
compressed text frames, so a finished (or aborted) run can be replayed
and inspected without re-running any SCF. One frame per cycle: the
scalar diagnostics and both channels of the accumulated potential.

The compressor is picked from the last letter of the file name, as in
goChem's stf trajectories: 'z' means gzip, 'r' means raw deflate, and
anything else zstd. The ".pvs" suffix (partition-potential trace,
zstd) is the suggested default.*/
package trace

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/gopdft"
	"gonum.org/v1/gonum/mat"
)

//Write!

// Writer appends cycle frames to a compressed trace file. It implements
// pdft.Observer, so it can hang directly off the engine options.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	nbf       int
	filename  string
	writeable bool
}

// NewWriter creates the file name and writes the header for matrices of
// basis size nbf. Only the first header map is read; its pairs are
// stored as key=value lines before the frames. The compression level
// only applies to the deflate and gzip formats.
func NewWriter(name string, nbf int, header map[string]string, compressionLevel ...int) (*Writer, error) {
	level := 9
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	W := new(Writer)
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, Error{"can't create file: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	switch format(name) {
	case 'z':
		W.h, err = gzip.NewWriterLevel(W.f, level)
	case 'r':
		W.h, err = flate.NewWriter(W.f, level)
	default:
		W.h, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}
	if err != nil {
		W.f.Close()
		return nil, Error{"can't set up the compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.nbf = nbf
	W.filename = name
	W.writeable = true
	for k, v := range header {
		fmt.Fprintf(W.h, "%s=%v\n", k, v)
	}
	fmt.Fprintf(W.h, "** %d\n", nbf)
	return W, nil
}

func format(name string) byte {
	return strings.ToLower(name)[len(name)-1]
}

// WNext appends one frame with the record's cycle index, scalar
// diagnostics and accumulated potential.
func (W *Writer) WNext(rec *pdft.Record) error {
	if !W.writeable {
		return Error{uninitializedWrite, W.filename, []string{"WNext"}, true}
	}
	if rec == nil || rec.VP == nil {
		return Error{"nil record or record without a potential", W.filename, []string{"WNext"}, true}
	}
	if r, c := rec.VP.Alpha.Dims(); r != W.nbf || c != W.nbf {
		return Error{fmt.Sprintf("potential is %dx%d, the trace was opened for %d basis functions", r, c, W.nbf), W.filename, []string{"WNext"}, true}
	}
	fmt.Fprintf(W.h, "@ %d %s %s\n", rec.Cycle, ftoa(rec.L1), ftoa(rec.Ep))
	if err := W.writeChannel('a', rec.VP.Alpha); err != nil {
		return errDecorate(err, "WNext")
	}
	if err := W.writeChannel('b', rec.VP.Beta); err != nil {
		return errDecorate(err, "WNext")
	}
	_, err := W.h.Write([]byte("*\n"))
	if err != nil {
		return Error{err.Error(), W.filename, []string{"WNext"}, true}
	}
	return nil
}

func (W *Writer) writeChannel(tag byte, m *mat.Dense) error {
	row := make([]string, W.nbf+1)
	row[0] = string(tag)
	for i := 0; i < W.nbf; i++ {
		for j := 0; j < W.nbf; j++ {
			row[j+1] = ftoa(m.At(i, j))
		}
		if _, err := W.h.Write([]byte(strings.Join(row, " ") + "\n")); err != nil {
			return Error{err.Error(), W.filename, []string{"writeChannel"}, true}
		}
	}
	return nil
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Observe satisfies pdft.Observer. Write failures are logged, not
// propagated: archiving may not interfere with the inversion.
func (W *Writer) Observe(rec *pdft.Record) {
	if err := W.WNext(rec); err != nil {
		cycle := -1
		if rec != nil {
			cycle = rec.Cycle
		}
		log.Printf("goPDFT/trace: dropping frame for cycle %d of %s: %v", cycle, W.filename, err)
	}
}

// Close flushes and closes the trace. Safe on a nil or already closed
// writer.
func (W *Writer) Close() {
	if W == nil || !W.writeable {
		return
	}
	W.h.Close()
	W.f.Close()
	W.writeable = false
}

//Read!

// Frame is one archived cycle.
type Frame struct {
	Cycle  int
	L1, Ep float64
	VP     *pdft.Potential
}

// Reader replays a trace file frame by frame.
type Reader struct {
	f        *os.File
	zr       io.ReadCloser
	h        *bufio.Reader
	nbf      int
	filename string
	header   map[string]string
	readable bool
}

// New opens a trace file and reads its header. The compressor is picked
// from the file name the same way as in NewWriter.
func New(name string) (*Reader, error) {
	R := new(Reader)
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, Error{"can't open file: " + err.Error(), name, []string{"New"}, true}
	}
	switch format(name) {
	case 'z':
		R.zr, err = gzip.NewReader(R.f)
	case 'r':
		R.zr = flate.NewReader(R.f)
	default:
		var d *zstd.Decoder
		d, err = zstd.NewReader(R.f)
		if err == nil {
			R.zr = d.IOReadCloser()
		}
	}
	if err != nil {
		R.f.Close()
		return nil, Error{"can't set up the decompressor: " + err.Error(), name, []string{"New"}, true}
	}
	R.h = bufio.NewReader(R.zr)
	R.filename = name
	R.header = map[string]string{}
	for {
		line, err := R.h.ReadString('\n')
		if err != nil {
			return nil, Error{"truncated header: " + err.Error(), name, []string{"New"}, true}
		}
		line = strings.TrimSuffix(line, "\n")
		if strings.HasPrefix(line, "** ") {
			R.nbf, err = strconv.Atoi(strings.TrimPrefix(line, "** "))
			if err != nil || R.nbf <= 0 {
				return nil, Error{"malformed basis size in header: " + line, name, []string{"New"}, true}
			}
			break
		}
		if k, v, ok := strings.Cut(line, "="); ok {
			R.header[k] = v
		}
	}
	R.readable = true
	return R, nil
}

// Nbf returns the basis size of the archived potentials.
func (R *Reader) Nbf() int { return R.nbf }

// Header returns the key=value pairs stored before the frames.
func (R *Reader) Header() map[string]string { return R.header }

// Next returns the next frame. At the end of the trace it returns a
// LastFrameError, which callers filter the way goChem filters the end
// of a trajectory.
func (R *Reader) Next() (*Frame, error) {
	if !R.readable {
		return nil, Error{uninitializedRead, R.filename, []string{"Next"}, true}
	}
	line, err := R.h.ReadString('\n')
	if err == io.EOF || (err == nil && line == "") {
		return nil, newLastFrameError(R.filename, "Next")
	}
	if err != nil {
		return nil, Error{err.Error(), R.filename, []string{"Next"}, true}
	}
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "@" {
		return nil, Error{"malformed frame marker: " + line, R.filename, []string{"Next"}, true}
	}
	fr := new(Frame)
	fr.Cycle, err = strconv.Atoi(fields[1])
	if err != nil {
		return nil, Error{"malformed cycle index: " + fields[1], R.filename, []string{"Next"}, true}
	}
	if fr.L1, err = strconv.ParseFloat(fields[2], 64); err != nil {
		return nil, Error{"malformed L1 error: " + fields[2], R.filename, []string{"Next"}, true}
	}
	if fr.Ep, err = strconv.ParseFloat(fields[3], 64); err != nil {
		return nil, Error{"malformed Ep: " + fields[3], R.filename, []string{"Next"}, true}
	}
	fr.VP = pdft.ZeroPotential(R.nbf)
	if err := R.readChannel('a', fr.VP.Alpha); err != nil {
		return nil, errDecorate(err, "Next")
	}
	if err := R.readChannel('b', fr.VP.Beta); err != nil {
		return nil, errDecorate(err, "Next")
	}
	line, err = R.h.ReadString('\n')
	if err != nil || strings.TrimSpace(line) != "*" {
		return nil, Error{"missing frame terminator", R.filename, []string{"Next"}, true}
	}
	return fr, nil
}

func (R *Reader) readChannel(tag byte, m *mat.Dense) error {
	for i := 0; i < R.nbf; i++ {
		line, err := R.h.ReadString('\n')
		if err != nil {
			return Error{"truncated frame: " + err.Error(), R.filename, []string{"readChannel"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) != R.nbf+1 || fields[0] != string(tag) {
			return Error{"malformed matrix row: " + line, R.filename, []string{"readChannel"}, true}
		}
		for j, v := range fields[1:] {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return Error{"malformed matrix element: " + v, R.filename, []string{"readChannel"}, true}
			}
			m.Set(i, j, x)
		}
	}
	return nil
}

// Close closes the reader and marks it as unreadable. Safe to call more
// than once.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	R.zr.Close()
	R.f.Close()
	R.readable = false
}
