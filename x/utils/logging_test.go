package utils

import (
	"bytes"
	"context"
	"testing"

	ledger "github.com/iov-one/tranche"
	"github.com/iov-one/tranche/errors"
	"github.com/iov-one/tranche/store"
	"github.com/iov-one/tranche/weavetest"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/log"
)

func TestLogging(t *testing.T) {
	cases := map[string]struct {
		handler  ledger.Handler
		deliver  bool
		wantErr  bool
		contains []string
		missing  []string
	}{
		"deliver success is logged at info": {
			handler:  &weavetest.Handler{DeliverResult: ledger.DeliverResult{Log: "paid"}},
			deliver:  true,
			contains: []string{"paid", "path=tranche/distribute", "duration="},
		},
		"deliver failure is logged at error": {
			handler:  &weavetest.Handler{DeliverErr: errors.ErrUnauthorized.New("not the owner")},
			deliver:  true,
			wantErr:  true,
			contains: []string{"not the owner", "path=tranche/distribute"},
		},
		"check success is debug only": {
			handler: &weavetest.Handler{CheckResult: ledger.CheckResult{Log: "checked"}},
			missing: []string{"checked"},
		},
		"check failure is logged": {
			handler:  &weavetest.Handler{CheckErr: errors.ErrAmount},
			wantErr:  true,
			contains: []string{"invalid amount"},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var buf bytes.Buffer
			logger := log.NewFilter(log.NewTMLogger(log.NewSyncWriter(&buf)), log.AllowInfo())
			ctx := ledger.WithLogger(context.Background(), logger)
			tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "tranche/distribute"}}

			var err error
			if tc.deliver {
				_, err = NewLogging().Deliver(ctx, store.MemStore(), tx, tc.handler)
			} else {
				_, err = NewLogging().Check(ctx, store.MemStore(), tx, tc.handler)
			}
			assert.Equal(t, tc.wantErr, err != nil)

			out := buf.String()
			for _, s := range tc.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tc.missing {
				assert.NotContains(t, out, s)
			}
		})
	}
}
