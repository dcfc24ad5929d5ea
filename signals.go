package veil

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for veil events. Emissions carry kinds, sizes, and durations,
// never decrypted content.
var (
	SignalDecrypted = capitan.NewSignal("veil.decrypt", "Obfuscated table decrypted")
	SignalWiped     = capitan.NewSignal("veil.wipe", "Plaintext buffer wiped")
	SignalShredded  = capitan.NewSignal("veil.shred", "Struct fields shredded")
)

// Keys for typed event data.
var (
	KeyKind       = capitan.NewStringKey("kind")
	KeyTypeName   = capitan.NewStringKey("type_name")
	KeySize       = capitan.NewIntKey("size")
	KeyFieldCount = capitan.NewIntKey("field_count")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

// emitDecrypted emits an event when a table is decrypted.
func emitDecrypted(ctx context.Context, kind Kind, size int, duration time.Duration) {
	capitan.Emit(ctx, SignalDecrypted,
		KeyKind.Field(string(kind)),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	)
}

// emitWiped emits an event when a plaintext buffer is zeroed.
func emitWiped(ctx context.Context, kind Kind, size int) {
	capitan.Emit(ctx, SignalWiped,
		KeyKind.Field(string(kind)),
		KeySize.Field(size),
	)
}

// emitShredded emits an event when a struct shred finishes.
func emitShredded(ctx context.Context, typeName string, count int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyFieldCount.Field(count),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalShredded, fields...)
	} else {
		capitan.Emit(ctx, SignalShredded, fields...)
	}
}
