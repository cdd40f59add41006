/*
 * errors.go, part of gopdft.
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

package trace

import (
	"github.com/rmera/gopdft"
)

// Error is the general structure for trace errors. It fulfills
// pdft.Error and carries the offending file name.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string { return "goPDFT/trace: " + err.message + " (" + err.filename + ")" }

// Decorate adds dec to the decoration slice and returns the result.
func (err Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// FileName returns the name of the trace file that caused the error.
func (err Error) FileName() string { return err.filename }

// Critical returns whether the error can be ignored.
func (err Error) Critical() bool { return err.critical }

const (
	uninitializedWrite = "writer not initialized, or already closed"
	uninitializedRead  = "reader not initialized, or already closed"
)

// baseError aliases Error so it can be embedded in LastFrameError
// without the field name shadowing the promoted Error() method.
type baseError = Error

// LastFrameError signals the normal end of a trace. It is not critical;
// filter it with a type assertion before treating read errors as fatal.
type LastFrameError struct {
	baseError
}

// NormalLastFrameTermination does nothing. It separates this type from
// plain trace errors in type switches.
func (err LastFrameError) NormalLastFrameTermination() {}

func newLastFrameError(filename, caller string) LastFrameError {
	return LastFrameError{Error{"no more frames", filename, []string{caller}, false}}
}

// errDecorate asserts that err implements pdft.Error and decorates it
// with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(pdft.Error)
	err2.Decorate(caller)
	return err2
}
