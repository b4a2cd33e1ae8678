package middleware

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
)

func TestCallerIdentity(t *testing.T) {
	cases := []struct {
		name     string
		local    interface{}
		wantID   uint
		wantRole string
		wantOK   bool
	}{
		{
			name:     "issued shape",
			local:    &jwt.Token{Claims: jwt.MapClaims{"id": float64(7), "role": "doctor"}},
			wantID:   7,
			wantRole: "doctor",
			wantOK:   true,
		},
		{
			name:   "zero id",
			local:  &jwt.Token{Claims: jwt.MapClaims{"id": float64(0), "role": "doctor"}},
			wantOK: false,
		},
		{
			name:   "id not numeric",
			local:  &jwt.Token{Claims: jwt.MapClaims{"id": "7", "role": "doctor"}},
			wantOK: false,
		},
		{
			name:   "role missing",
			local:  &jwt.Token{Claims: jwt.MapClaims{"id": float64(7)}},
			wantOK: false,
		},
		{
			name:   "role empty",
			local:  &jwt.Token{Claims: jwt.MapClaims{"id": float64(7), "role": ""}},
			wantOK: false,
		},
		{
			name:   "no token in locals",
			local:  nil,
			wantOK: false,
		},
		{
			name:   "wrong local type",
			local:  "not a token",
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, role, ok := callerIdentity(tc.local)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if !tc.wantOK {
				return
			}
			if id != tc.wantID || role != tc.wantRole {
				t.Fatalf("identity = (%d, %q), want (%d, %q)", id, role, tc.wantID, tc.wantRole)
			}
		})
	}
}
