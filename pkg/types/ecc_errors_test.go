package types

import (
	"errors"
	"fmt"
	"testing"
)

// TestErrorKindStringer 校验 ErrorKind 的字符串输出
func TestErrorKindStringer(t *testing.T) {
	tests := []struct {
		in   ErrorKind
		want string
	}{
		{ErrNoPublicKey, "ErrNoPublicKey"},
		{ErrInvalidPrefix, "ErrInvalidPrefix"},
		{ErrInvalidLength, "ErrInvalidLength"},
		{ErrInvalidKey, "ErrInvalidKey"},
		{ErrInvalidChildIndex, "ErrInvalidChildIndex"},
		{ErrUnknownCurve, "ErrUnknownCurve"},
		{ErrUnsupportedMAC, "ErrUnsupportedMAC"},
		{ErrUnsupportedHash, "ErrUnsupportedHash"},
		{ErrUnsupportedAlgorithm, "ErrUnsupportedAlgorithm"},
		{ErrDigestTooShort, "ErrDigestTooShort"},
		{ErrInvalidMAC, "ErrInvalidMAC"},
		{ErrInvalidChecksum, "ErrInvalidChecksum"},
		{ErrInvalidNetwork, "ErrInvalidNetwork"},
		{ErrNotRecoverable, "ErrNotRecoverable"},
	}

	for i, test := range tests {
		if got := test.in.Error(); got != test.want {
			t.Errorf("#%d: got: %s want: %s", i, got, test.want)
		}
	}
}

// TestErrorKindIsAs 校验 ErrorKind 与 ECCError 均可通过 errors.Is/As 识别
func TestErrorKindIsAs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
		wantAs    ErrorKind
	}{{
		name:      "ErrInvalidMAC == ErrInvalidMAC",
		err:       ErrInvalidMAC,
		target:    ErrInvalidMAC,
		wantMatch: true,
		wantAs:    ErrInvalidMAC,
	}, {
		name:      "ECCError.ErrInvalidMAC == ErrInvalidMAC",
		err:       NewECCError(ErrInvalidMAC, "mac mismatch"),
		target:    ErrInvalidMAC,
		wantMatch: true,
		wantAs:    ErrInvalidMAC,
	}, {
		name:      "wrapped ECCError.ErrInvalidKey == ErrInvalidKey",
		err:       fmt.Errorf("decode: %w", NewECCError(ErrInvalidKey, "bad point")),
		target:    ErrInvalidKey,
		wantMatch: true,
		wantAs:    ErrInvalidKey,
	}, {
		name:      "ECCError.ErrInvalidPrefix != ErrInvalidLength",
		err:       NewECCError(ErrInvalidPrefix, ""),
		target:    ErrInvalidLength,
		wantMatch: false,
		wantAs:    ErrInvalidPrefix,
	}, {
		name:      "ErrNotRecoverable != ErrInvalidLength",
		err:       ErrNotRecoverable,
		target:    ErrInvalidLength,
		wantMatch: false,
		wantAs:    ErrNotRecoverable,
	}}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := errors.Is(test.err, test.target); got != test.wantMatch {
				t.Fatalf("errors.Is: got %v want %v", got, test.wantMatch)
			}
			var kind ErrorKind
			if !errors.As(test.err, &kind) {
				t.Fatalf("errors.As 未能提取 ErrorKind")
			}
			if kind != test.wantAs {
				t.Fatalf("errors.As: got %v want %v", kind, test.wantAs)
			}
		})
	}
}

func TestErrorCategoryOf(t *testing.T) {
	tests := []struct {
		err  error
		want ErrorCategory
	}{
		{NewECCError(ErrNoPublicKey, ""), CategoryInput},
		{NewECCError(ErrDigestTooShort, ""), CategoryInput},
		{NewECCError(ErrInvalidMAC, ""), CategoryAuth},
		{fmt.Errorf("wif: %w", NewECCError(ErrInvalidChecksum, "")), CategoryAuth},
		{ErrInvalidNetwork, CategoryAuth},
		{ErrNotRecoverable, CategoryFormat},
		{errors.New("other"), CategoryUnknown},
		{nil, CategoryUnknown},
	}
	for i, test := range tests {
		if got := ErrorCategoryOf(test.err); got != test.want {
			t.Errorf("#%d: got %s want %s", i, got, test.want)
		}
	}
}
