package configfile

import (
	"errors"
	"fmt"
)

// Common errors, test them with errors.Is.
var (
	// ErrNotExist is returned when a source file does not exist.
	ErrNotExist = errors.New("configfile: source does not exist")
	// ErrInvalidSource is returned when a source exists but cannot be read.
	ErrInvalidSource = errors.New("configfile: invalid source")
	// ErrParsing is wrapped by every *ParsingError.
	ErrParsing = errors.New("configfile: parsing error")
	// ErrInvalidObject is wrapped by every *InvalidObjectError.
	ErrInvalidObject = errors.New("configfile: invalid object")
	// ErrSectionNotFound is returned by Sub for a missing section.
	ErrSectionNotFound = errors.New("configfile: section not found")
	// ErrOptionNotFound is returned for a missing option, by Get only when no
	// fallback was given.
	ErrOptionNotFound = errors.New("configfile: option not found")
	// ErrConversion is returned by typed getters that cannot convert a value.
	ErrConversion = errors.New("configfile: conversion failed")
	// ErrUnrecognizedBool is returned by GetBool when the value is in neither
	// token set and no default was given.
	ErrUnrecognizedBool = errors.New("configfile: unrecognized boolean status")
	// ErrRootSection is returned when removing the root section.
	ErrRootSection = errors.New("configfile: operation not allowed on the root section")
)

// ParsingError reports a line that matches none of the recognized grammars.
type ParsingError struct {
	Source string
	Line   string
	LineNo int
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("invalid line in %s: %s (line %d)", e.Source, e.Line, e.LineNo)
}

func (e *ParsingError) Unwrap() error {
	return ErrParsing
}

// InvalidObjectError reports an option or section of an importing tree whose
// name or value does not satisfy the grammar.
type InvalidObjectError struct {
	Key    string
	Value  string
	Reason string
}

func (e *InvalidObjectError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Reason, e.Key)
	}
	return fmt.Sprintf("%s: %s: %s", e.Reason, e.Key, e.Value)
}

func (e *InvalidObjectError) Unwrap() error {
	return ErrInvalidObject
}
