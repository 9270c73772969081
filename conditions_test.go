package ledger_test

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"testing"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressPrinting(t *testing.T) {
	Convey("test hexadecimal address printing", t, func() {
		b := []byte("ABCD123456LHB")
		addr := ledger.Address(b)

		So(addr.String(), ShouldNotEqual, fmt.Sprintf("%X", addr))
		So(addr.String(), ShouldEqual, fmt.Sprintf("%X", b))
		So(ledger.Address(nil).String(), ShouldEqual, "(nil)")
	})

	Convey("test hexadecimal condition printing", t, func() {
		cond := ledger.NewCondition("12", "32", []byte("ABCD123456LHB"))

		So(cond.String(), ShouldNotEqual, fmt.Sprintf("%X", cond))
		So(ledger.Condition("foo").String(), ShouldStartWith, "Invalid Condition")
	})
}

func TestConditionParse(t *testing.T) {
	cases := map[string]struct {
		cond    ledger.Condition
		wantExt string
		wantTyp string
		wantErr *errors.Error
	}{
		"valid condition": {
			cond:    ledger.NewCondition("tranche", "seq", []byte{0, 0, 0, 1}),
			wantExt: "tranche",
			wantTyp: "seq",
		},
		"data with newline": {
			cond:    ledger.NewCondition("sigs", "ed25519", []byte{0x20, 0x0a, 0x20}),
			wantExt: "sigs",
			wantTyp: "ed25519",
		},
		"extension too short": {
			cond:    ledger.NewCondition("x", "seq", []byte{1}),
			wantErr: errors.ErrInput,
		},
		"no data": {
			cond:    ledger.Condition("tranche/seq/"),
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ext, typ, _, err := tc.cond.Parse()
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if !tc.wantErr.Is(tc.cond.Validate()) {
				t.Fatalf("validate disagrees with parse")
			}
			if err == nil {
				assert.Equal(t, tc.wantExt, ext)
				assert.Equal(t, tc.wantTyp, typ)
			}
		})
	}
}

func TestAddressUnmarshalJSON(t *testing.T) {
	raw := []byte("tranche-addr-twenty!")
	require.Len(t, raw, ledger.AddressLength)
	enc := hex.EncodeToString(raw)

	b32, err := ledger.Address(raw).Bech32()
	require.NoError(t, err)

	cases := map[string]struct {
		json     string
		wantErr  *errors.Error
		wantAddr ledger.Address
	}{
		"default decoding": {
			json:     `"` + enc + `"`,
			wantAddr: ledger.Address(raw),
		},
		"hex decoding": {
			json:     `"hex:` + enc + `"`,
			wantAddr: ledger.Address(raw),
		},
		"bech32 decoding": {
			json:     `"bech32:` + b32 + `"`,
			wantAddr: ledger.Address(raw),
		},
		"cond decoding": {
			json:     `"cond:foo/bar/636f6e646974696f6e64617461"`,
			wantAddr: ledger.NewCondition("foo", "bar", []byte("conditiondata")).Address(),
		},
		"short hex address": {
			json:    `"6865782d61646472"`,
			wantErr: errors.ErrInput,
		},
		"invalid bech32": {
			json:    `"bech32:trch1qqqq"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition format": {
			json:    `"cond:foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"cond:foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"unknown format": {
			json:    `"foobar:xxx"`,
			wantErr: errors.ErrType,
		},
		"zero address": {
			json:     `""`,
			wantAddr: nil,
		},
		"zero hex address": {
			json:     `"hex:"`,
			wantAddr: nil,
		},
		"zero cond address": {
			json:     `"cond:"`,
			wantAddr: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var a ledger.Address
			err := json.Unmarshal([]byte(tc.json), &a)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !reflect.DeepEqual(a, tc.wantAddr) {
				t.Fatalf("got address: %q", a)
			}
		})
	}
}

func TestAddressJSONRoundTrip(t *testing.T) {
	addr := ledger.NewCondition("tranche", "seq", []byte{0, 0, 0, 0, 0, 0, 0, 1}).Address()
	require.NoError(t, addr.Validate())

	raw, err := json.Marshal(addr)
	require.NoError(t, err)

	var got ledger.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)
}

func TestConditionUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		json          string
		wantErr       *errors.Error
		wantCondition ledger.Condition
	}{
		"default decoding": {
			json:          `"foo/bar/636f6e646974696f6e64617461"`,
			wantCondition: ledger.NewCondition("foo", "bar", []byte("conditiondata")),
		},
		"invalid condition format": {
			json:    `"foo/636f6e646974696f6e64617461"`,
			wantErr: errors.ErrInput,
		},
		"invalid condition data": {
			json:    `"foo/bar/zzzzz"`,
			wantErr: errors.ErrInput,
		},
		"zero address": {
			json:          `""`,
			wantCondition: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got ledger.Condition
			err := json.Unmarshal([]byte(tc.json), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("got error: %+v", err)
			}
			if err == nil && !got.Equals(tc.wantCondition) {
				t.Fatalf("expected different condition, got: %v", got)
			}
		})
	}
}
