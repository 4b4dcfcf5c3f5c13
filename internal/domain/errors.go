package domain

import "errors"

var (
	ErrInvalidOracleText = errors.New("invalid oracle text")
	ErrCorpusEmpty       = errors.New("fortune corpus is empty")
	ErrNoRandomSource    = errors.New("random source unavailable")
	ErrRenderUnavailable = errors.New("image renderer unavailable")
	ErrRender            = errors.New("render failure")
)
