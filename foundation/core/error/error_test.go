// File: error_test.go
// Title: Error Module Tests
// Description: Tests for error creation, wrapping, code propagation and
//              compatibility with the standard errors package.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2025-03-02

package error

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New("test error message")

	if err.Error() != "test error message" {
		t.Errorf("Error() = %q, want %q", err.Error(), "test error message")
	}
	if err.Code() != CodeUnknown {
		t.Errorf("Code() = %v, want %v", err.Code(), CodeUnknown)
	}
	if err.Timestamp().IsZero() {
		t.Error("Timestamp() should not be zero")
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		message  string
		wantNil  bool
		wantMsg  string
		wantCode Code
	}{
		{
			name:    "wrap nil error",
			err:     nil,
			message: "context",
			wantNil: true,
		},
		{
			name:     "wrap standard error",
			err:      errors.New("overlap"),
			message:  "Failed to map memory",
			wantMsg:  "Failed to map memory: overlap",
			wantCode: CodeUnknown,
		},
		{
			name:     "wrap coded error inherits code",
			err:      New("bad digit").WithCode(CodeArgumentParseFailure),
			message:  "Failed to parse vir",
			wantMsg:  "Failed to parse vir: bad digit",
			wantCode: CodeArgumentParseFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.err, tt.message)
			if tt.wantNil {
				if got != nil {
					t.Errorf("Wrap() = %v, want nil", got)
				}
				return
			}
			if got.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got.Error(), tt.wantMsg)
			}
			if got.Code() != tt.wantCode {
				t.Errorf("Code() = %v, want %v", got.Code(), tt.wantCode)
			}
			if !errors.Is(got, tt.err) {
				t.Error("wrapped error should match its cause with errors.Is")
			}
		})
	}
}

func TestIsByCode(t *testing.T) {
	err := fmt.Errorf("lookup: %w", Wrap(ErrEnvNotFound, "cannot read asm.arch"))

	if !errors.Is(err, ErrEnvNotFound) {
		t.Error("errors.Is should match the env sentinel through the chain")
	}
	if errors.Is(err, ErrEnvDifferentType) {
		t.Error("errors.Is should not match a sentinel with another code")
	}
	if errors.Is(New("a"), New("a")) {
		t.Error("errors without a code should only match themselves")
	}
}

func TestEnvSentinelMessages(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
		code Code
	}{
		{ErrEnvNotFound, "Environment variable not found.", CodeEnvNotFound},
		{ErrEnvDifferentType, "Environment variable has different type.", CodeEnvDifferentType},
		{ErrEnvCallbackFailed, "Call back failed.", CodeEnvCallbackFailed},
		{ErrEnvAlreadyExists, "Environment variable already exist.", CodeEnvAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
			}
			if tt.err.Code() != tt.code {
				t.Errorf("Code() = %v, want %v", tt.err.Code(), tt.code)
			}
			if tt.code.Category() != "environment" {
				t.Errorf("Category() = %q, want environment", tt.code.Category())
			}
		})
	}
}

func TestDetails(t *testing.T) {
	err := New("x").WithDetail("name", "vir").WithDetails(map[string]interface{}{"value": "0xzz"})
	details := err.Details()
	if details["name"] != "vir" || details["value"] != "0xzz" {
		t.Errorf("Details() = %v", details)
	}

	details["name"] = "changed"
	if err.Details()["name"] != "vir" {
		t.Error("Details() should return a copy")
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(errors.New("plain")) != CodeUnknown {
		t.Error("plain errors should report CodeUnknown")
	}
	wrapped := fmt.Errorf("outer: %w", New("inner").WithCode(CodeCommandNotFound))
	if !HasCode(wrapped, CodeCommandNotFound) {
		t.Errorf("HasCode() = false, want true for %v", wrapped)
	}
	if !CodeCommandNotFound.IsValid() || Code("NOPE").IsValid() {
		t.Error("IsValid() mismatch")
	}
}
