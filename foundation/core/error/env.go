// File: env.go
// Title: Environment Error Taxonomy
// Description: Sentinel errors reported by the typed environment variable
//              store. Only the taxonomy lives here; storage and change
//              callbacks belong to the environment subsystem.
// Author: msto63
// Version: v0.1.0
// Created: 2025-03-02
// Modified: 2025-03-02

package error

var (
	ErrEnvNotFound       = New("Environment variable not found.").WithCode(CodeEnvNotFound)
	ErrEnvDifferentType  = New("Environment variable has different type.").WithCode(CodeEnvDifferentType)
	ErrEnvCallbackFailed = New("Call back failed.").WithCode(CodeEnvCallbackFailed)
	ErrEnvAlreadyExists  = New("Environment variable already exist.").WithCode(CodeEnvAlreadyExists)
)
