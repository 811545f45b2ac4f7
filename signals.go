package sealbox

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for document protection events.
var (
	SignalProtectorCreated = capitan.NewSignal("sealbox.protector.created", "Protector instantiated")
	SignalEncryptStart     = capitan.NewSignal("sealbox.encrypt.start", "Document encryption beginning")
	SignalEncryptComplete  = capitan.NewSignal("sealbox.encrypt.complete", "Document encryption finished")
	SignalDecryptStart     = capitan.NewSignal("sealbox.decrypt.start", "Document decryption beginning")
	SignalDecryptComplete  = capitan.NewSignal("sealbox.decrypt.complete", "Document decryption finished")
	SignalDecryptMiss      = capitan.NewSignal("sealbox.decrypt.miss", "Leaf failed to decrypt and was left as-is")
	SignalTypeMismatch     = capitan.NewSignal("sealbox.walk.mismatch", "Array path segment addressed a non-array value")
)

// Keys for typed event data.
var (
	KeyField          = capitan.NewStringKey("field")
	KeyPath           = capitan.NewStringKey("path")
	KeyPolicyCount    = capitan.NewIntKey("policy_count")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeyErr            = capitan.NewErrorKey("error")
	KeyEncryptedCount = capitan.NewIntKey("encrypted_count")
	KeyDecryptedCount = capitan.NewIntKey("decrypted_count")
	KeySkippedCount   = capitan.NewIntKey("skipped_count")
	KeyMissCount      = capitan.NewIntKey("miss_count")
)

// emitProtectorCreated emits an event when a protector is created.
func emitProtectorCreated(ctx context.Context, policies int) {
	capitan.Emit(ctx, SignalProtectorCreated,
		KeyPolicyCount.Field(policies),
	)
}

// emitEncryptStart emits an event when document encryption begins.
func emitEncryptStart(ctx context.Context, policies int) {
	capitan.Emit(ctx, SignalEncryptStart,
		KeyPolicyCount.Field(policies),
	)
}

// emitEncryptComplete emits an event when document encryption finishes.
func emitEncryptComplete(ctx context.Context, duration time.Duration, encrypted, skipped int, err error) {
	fields := []capitan.Field{
		KeyDuration.Field(duration),
		KeyEncryptedCount.Field(encrypted),
		KeySkippedCount.Field(skipped),
	}
	if err != nil {
		fields = append(fields, KeyErr.Field(err))
		capitan.Error(ctx, SignalEncryptComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncryptComplete, fields...)
	}
}

// emitDecryptStart emits an event when document decryption begins.
func emitDecryptStart(ctx context.Context, policies int) {
	capitan.Emit(ctx, SignalDecryptStart,
		KeyPolicyCount.Field(policies),
	)
}

// emitDecryptComplete emits an event when document decryption finishes.
func emitDecryptComplete(ctx context.Context, duration time.Duration, decrypted, misses int, err error) {
	fields := []capitan.Field{
		KeyDuration.Field(duration),
		KeyDecryptedCount.Field(decrypted),
		KeyMissCount.Field(misses),
	}
	if err != nil {
		fields = append(fields, KeyErr.Field(err))
		capitan.Error(ctx, SignalDecryptComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecryptComplete, fields...)
	}
}

// emitDecryptMiss emits a warning when a leaf fails to decrypt and the
// original value is kept.
func emitDecryptMiss(ctx context.Context, field, path string, err error) {
	capitan.Error(ctx, SignalDecryptMiss,
		KeyField.Field(field),
		KeyPath.Field(path),
		KeyErr.Field(err),
	)
}

// emitTypeMismatch emits a warning when an array segment addresses a
// non-array value.
func emitTypeMismatch(ctx context.Context, field, path string) {
	capitan.Emit(ctx, SignalTypeMismatch,
		KeyField.Field(field),
		KeyPath.Field(path),
	)
}
