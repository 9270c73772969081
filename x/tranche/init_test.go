package tranche

import (
	"encoding/json"
	"testing"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/weavetest"
	"github.com/iov-one/tranche/weavetest/assert"
)

func TestGenesis(t *testing.T) {
	d1 := weavetest.RandomAddr(t)
	d2 := weavetest.RandomAddr(t)

	cases := map[string]struct {
		opts     string
		wantErr  *errors.Error
		wantDist []ledger.Address
	}{
		"no configuration": {
			opts: `{}`,
		},
		"other package configured": {
			opts: `{"conf": {"cash": {}}}`,
		},
		"distributors": {
			opts:     `{"conf": {"tranche": {"distributors": ["` + d1.String() + `", "` + d2.String() + `"]}}}`,
			wantDist: []ledger.Address{d1, d2},
		},
		"duplicated distributor": {
			opts:    `{"conf": {"tranche": {"distributors": ["` + d1.String() + `", "` + d1.String() + `"]}}}`,
			wantErr: errors.ErrDuplicate,
		},
		"malformed": {
			opts:    `{"conf": {"tranche": {"distributors": 5}}}`,
			wantErr: errors.ErrInput,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var opts ledger.Options
			if err := json.Unmarshal([]byte(tc.opts), &opts); err != nil {
				t.Fatalf("cannot parse options: %s", err)
			}
			db := store.MemStore()
			err := Initializer{}.FromGenesis(opts, db)
			assert.IsErr(t, tc.wantErr, err)
			if tc.wantErr != nil {
				return
			}
			conf, err := loadConf(db)
			assert.Nil(t, err)
			if len(tc.wantDist) == 0 {
				assert.Equal(t, 0, len(conf.Distributors))
				return
			}
			assert.Equal(t, tc.wantDist, conf.Distributors)
		})
	}
}
