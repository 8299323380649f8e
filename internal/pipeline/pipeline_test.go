package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ilflow/internal/ilfmt"
)

var (
	// ldc.i4.1; brtrue.s IL_0004; nop; ret
	condBody = []byte{0x16, 0x17, 0x2d, 0x01, 0x00, 0x2a}
	// nop; leave.s; pop; leave.s; ret with one catch clause
	catchBody = []byte{
		0x1b, 0x30, 0x01, 0x00, 0x07, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0xde, 0x03, 0x26, 0xde, 0x00, 0x2a, 0x00,
		0x01, 0x10, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x03, 0x03, 0x00, 0x03, 0x01, 0x00, 0x00, 0x01,
	}
	// br.s into the middle of ldc.i4
	badTarget = []byte{0x22, 0x2b, 0x01, 0x20, 0x05, 0x00, 0x00, 0x00, 0x2a}
	// header format 0x1
	badHeader = []byte{0x01}
)

func methods() []Method {
	return []Method{
		{Name: "cond", Data: condBody},
		{Name: "catch", Data: catchBody},
		{Name: "target", Data: badTarget},
		{Name: "header", Data: badHeader},
	}
}

func TestRun_BestEffort(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	results, err := Run(context.Background(), methods(), Options{
		Mode:    ilfmt.ModeBestEffort,
		Workers: 2,
		Verify:  true,
		Logger:  &logger,
	})
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, want := range []string{"cond", "catch", "target", "header"} {
		assert.Equal(t, want, results[i].Name, "results keep input order")
	}
	require.NoError(t, results[0].Err)
	assert.Equal(t, 3, results[0].Tree.Stats().Blocks)
	assert.Equal(t, 1, results[1].Tree.Stats().Tries)

	// Bad branch target degrades to a diagnostic.
	require.NoError(t, results[2].Err)
	assert.Len(t, results[2].Diags, 1)

	assert.ErrorIs(t, results[3].Err, ilfmt.ErrBadHeader)
	assert.Nil(t, results[3].Tree)
	assert.Contains(t, logs.String(), `"method":"header"`)
	assert.Contains(t, logs.String(), `"level":"warn"`)
}

func TestRun_Strict(t *testing.T) {
	results, err := Run(context.Background(), methods(), Options{Mode: ilfmt.ModeStrict})
	require.Error(t, err)

	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
	assert.ErrorIs(t, err, ilfmt.ErrBadTarget)
	assert.ErrorIs(t, err, ilfmt.ErrBadHeader)

	assert.NoError(t, results[0].Err)
	assert.NoError(t, results[1].Err)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Run(ctx, methods(), Options{Mode: ilfmt.ModeBestEffort})
	require.ErrorIs(t, err, context.Canceled)
	for _, r := range results {
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestRun_Empty(t *testing.T) {
	results, err := Run(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestRun_ManyMethods(t *testing.T) {
	var in []Method
	for i := 0; i < 200; i++ {
		in = append(in, Method{Name: fmt.Sprintf("m%d", i), Data: catchBody})
	}
	results, err := Run(context.Background(), in, Options{Mode: ilfmt.ModeStrict, Workers: 8})
	require.NoError(t, err)
	for i, r := range results {
		require.Equal(t, fmt.Sprintf("m%d", i), r.Name)
		require.NotNil(t, r.Tree)
	}
	s := Summarize(results)
	assert.Equal(t, 200, s.Methods)
	assert.Equal(t, 200, s.Tries)
}

func TestSummarize(t *testing.T) {
	results, err := Run(context.Background(), methods(), Options{Mode: ilfmt.ModeBestEffort})
	require.NoError(t, err)
	s := Summarize(results)
	assert.Equal(t, Summary{
		Methods:      4,
		Failed:       1,
		Diags:        1,
		Instructions: 4 + 5 + 3,
		Blocks:       3 + 3 + 2,
		Tries:        1,
		Handlers:     1,
		MaxDepth:     1,
	}, s)
}

func TestOptionsWorkers(t *testing.T) {
	assert.Equal(t, 1, Options{}.workers(0))
	assert.Equal(t, 3, Options{Workers: 8}.workers(3))
	assert.Equal(t, 2, Options{Workers: 2}.workers(10))
}
