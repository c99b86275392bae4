// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	invalidArgumentsCode = "INVALID_ARGUMENTS"
	exportFailedCode     = "EXPORT_FAILED"
	historyFailedCode    = "HISTORY_FAILED"
)

func wrapValidationError(err error, message string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(invalidArgumentsCode)
}

func wrapCommandError(err error, message, code string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).
		WithTextCode(code)
}
