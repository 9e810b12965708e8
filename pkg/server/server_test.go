package server

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/spellserve/pkg/config"
	"github.com/bastiangx/spellserve/pkg/dictionary"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

const catBoard = "catszzzzzzzzzzzzzzzzzzzzz"

func writeWords(t *testing.T, path string, words ...string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(words, "\n")+"\n"), 0o644))
}

func newLoader(t *testing.T, words ...string) (*dictionary.RuntimeLoader, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	writeWords(t, path, words...)
	loader := dictionary.NewRuntimeLoader(path, dictionary.BackendTrie)
	require.NoError(t, loader.Load())
	return loader, path
}

// client drives a server over in-memory pipes, one request and response at a time.
type client struct {
	t    *testing.T
	in   *io.PipeWriter
	enc  *msgpack.Encoder
	dec  *msgpack.Decoder
	done chan error
}

func startServer(t *testing.T, loader *dictionary.RuntimeLoader, cfg *config.Config) *client {
	t.Helper()
	reqR, reqW := io.Pipe()
	respR, respW := io.Pipe()

	srv := newServer(loader, cfg, "", reqR, respW)
	done := make(chan error, 1)
	go func() {
		err := srv.Start()
		respW.Close()
		done <- err
	}()

	c := &client{t: t, in: reqW, enc: msgpack.NewEncoder(reqW), dec: msgpack.NewDecoder(respR), done: done}
	var ready StatusResponse
	c.recv(&ready)
	require.Equal(t, "ready", ready.Status)
	t.Cleanup(func() { c.close() })
	return c
}

func (c *client) send(req Request) {
	c.t.Helper()
	require.NoError(c.t, c.enc.Encode(req))
}

func (c *client) recv(v any) {
	c.t.Helper()
	require.NoError(c.t, c.dec.Decode(v))
}

func (c *client) close() {
	c.in.Close()
	<-c.done
}

func (c *client) expectError(req Request, code int) ErrorResponse {
	c.t.Helper()
	c.send(req)
	var resp ErrorResponse
	c.recv(&resp)
	assert.Equal(c.t, code, resp.Code, resp.Error)
	assert.NotEmpty(c.t, resp.Error)
	return resp
}

func TestSolve(t *testing.T) {
	loader, _ := newLoader(t, "cat", "cats", "at")
	c := startServer(t, loader, nil)

	c.send(Request{ID: "req1", Board: catBoard, DL: []int{0, 0}})
	var resp SolveResponse
	c.recv(&resp)

	assert.Equal(t, "req1", resp.ID)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, []WordGroup{
		{Points: 15, Words: []string{"cats"}, Rank: 1},
		{Points: 13, Words: []string{"cat"}, Rank: 2},
		{Points: 3, Words: []string{"at"}, Rank: 3},
	}, resp.Groups)
	assert.Empty(t, resp.Swaps)
}

func TestSolveLimit(t *testing.T) {
	loader, _ := newLoader(t, "cat", "cats", "at")
	cfg := config.DefaultConfig()
	cfg.Server.MaxLimit = 2
	cfg.Server.DefaultLimit = 1
	c := startServer(t, loader, cfg)

	var resp SolveResponse
	c.send(Request{ID: "default", Action: ActionSolve, Board: catBoard})
	c.recv(&resp)
	require.Len(t, resp.Groups, 1)
	assert.Equal(t, 10, resp.Groups[0].Points)
	assert.Equal(t, 3, resp.Count, "count is taken before the limit")

	c.send(Request{ID: "capped", Board: catBoard, Limit: 10})
	c.recv(&resp)
	assert.Len(t, resp.Groups, 2)
}

func TestSolveWithSwaps(t *testing.T) {
	loader, _ := newLoader(t, "cat", "cats")
	c := startServer(t, loader, nil)

	c.send(Request{ID: "sw", Board: "catzz" + strings.Repeat("z", 20), Swaps: true, Limit: 1})
	var resp SolveResponse
	c.recv(&resp)

	require.Len(t, resp.Groups, 1)
	assert.Equal(t, 8, resp.Groups[0].Points)
	require.Len(t, resp.Swaps, 1)
	top := resp.Swaps[0]
	assert.Equal(t, 10, top.Points)
	assert.Equal(t, uint16(1), top.Rank)
	require.NotEmpty(t, top.Options)
	assert.Equal(t, SwapOption{Col: 3, Row: 0, Letter: "s", Words: []string{"cats"}}, top.Options[0])
	for _, opt := range top.Options {
		assert.Equal(t, "s", opt.Letter)
	}
}

func TestSolveAssignsID(t *testing.T) {
	loader, _ := newLoader(t, "cat")
	c := startServer(t, loader, nil)

	c.send(Request{Board: catBoard})
	var resp SolveResponse
	c.recv(&resp)
	_, err := uuid.Parse(resp.ID)
	assert.NoError(t, err)
}

func TestSolveRejectsBadInput(t *testing.T) {
	loader, _ := newLoader(t, "cat")
	c := startServer(t, loader, nil)

	resp := c.expectError(Request{ID: "short", Board: "cats"}, CodeBadRequest)
	assert.Equal(t, "short", resp.ID)

	c.expectError(Request{ID: "char", Board: strings.Repeat("a", 24) + "1"}, CodeBadRequest)

	resp = c.expectError(Request{ID: "tile", Board: catBoard, DW: []int{7, 1}}, CodeBadRequest)
	assert.Contains(t, resp.Error, "dw")

	c.expectError(Request{ID: "pair", Board: catBoard, TL: []int{1}}, CodeBadRequest)

	// the connection stays usable after rejected requests
	c.send(Request{ID: "ok", Board: catBoard})
	var ok SolveResponse
	c.recv(&ok)
	assert.Equal(t, "ok", ok.ID)
}

func TestUnknownAction(t *testing.T) {
	loader, _ := newLoader(t, "cat")
	c := startServer(t, loader, nil)

	resp := c.expectError(Request{ID: "x", Action: "shuffle"}, CodeUnknownAction)
	assert.Contains(t, resp.Error, "shuffle")
}

func TestComplete(t *testing.T) {
	loader, _ := newLoader(t, "cat", "cats", "cab", "dog")
	c := startServer(t, loader, nil)

	c.send(Request{ID: "c1", Action: ActionComplete, Prefix: "Ca"})
	var resp CompleteResponse
	c.recv(&resp)
	assert.Equal(t, []string{"cab", "cat", "cats"}, resp.Words)
	assert.Equal(t, 3, resp.Count)

	c.send(Request{ID: "c2", Action: ActionComplete, Prefix: "ca", Limit: 2})
	c.recv(&resp)
	assert.Equal(t, []string{"cab", "cat"}, resp.Words)

	c.send(Request{ID: "c3", Action: ActionComplete, Prefix: "x"})
	c.recv(&resp)
	assert.Empty(t, resp.Words)

	c.expectError(Request{ID: "c4", Action: ActionComplete}, CodeBadRequest)
	c.expectError(Request{ID: "c5", Action: ActionComplete, Prefix: "c4"}, CodeBadRequest)
}

func TestInfoAndHealth(t *testing.T) {
	loader, path := newLoader(t, "cat", "cats", "c4t")
	c := startServer(t, loader, nil)

	c.send(Request{ID: "i", Action: ActionInfo})
	var info InfoResponse
	c.recv(&info)
	assert.Equal(t, "ok", info.Status)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, "trie", info.Backend)
	assert.Equal(t, 2, info.Words)
	assert.Equal(t, 1, info.Skipped)
	assert.Greater(t, info.LoadedAt, int64(0))
	assert.GreaterOrEqual(t, info.Workers, 1)

	c.send(Request{ID: "h", Action: ActionHealth})
	var health StatusResponse
	c.recv(&health)
	assert.Equal(t, StatusResponse{ID: "h", Status: "ok"}, health)
}

func TestReload(t *testing.T) {
	loader, path := newLoader(t, "cat")
	c := startServer(t, loader, nil)

	writeWords(t, path, "cat", "cats")
	c.send(Request{ID: "r", Action: ActionReload})
	var status StatusResponse
	c.recv(&status)
	assert.Equal(t, "reloaded", status.Status)

	c.send(Request{ID: "s", Board: catBoard})
	var resp SolveResponse
	c.recv(&resp)
	require.NotEmpty(t, resp.Groups)
	assert.Equal(t, []string{"cats"}, resp.Groups[0].Words)

	require.NoError(t, os.Remove(path))
	c.expectError(Request{ID: "r2", Action: ActionReload}, CodeInternal)

	// the previous dictionary is still served
	c.send(Request{ID: "s2", Action: ActionInfo})
	var info InfoResponse
	c.recv(&info)
	assert.Equal(t, 2, info.Words)
}

func TestEmptyDictionary(t *testing.T) {
	loader := dictionary.NewRuntimeLoader(filepath.Join(t.TempDir(), "missing.txt"), "")
	c := startServer(t, loader, nil)

	c.expectError(Request{ID: "s", Board: catBoard}, CodeInternal)

	c.send(Request{ID: "i", Action: ActionInfo})
	var info InfoResponse
	c.recv(&info)
	assert.Equal(t, "empty", info.Status)
	assert.Equal(t, 0, info.Words)
}

func TestStartEndsOnEOF(t *testing.T) {
	loader, _ := newLoader(t, "cat")
	var out bytes.Buffer

	err := newServer(loader, nil, "", bytes.NewReader(nil), &out).Start()
	require.NoError(t, err)

	var ready StatusResponse
	require.NoError(t, msgpack.NewDecoder(&out).Decode(&ready))
	assert.Equal(t, "ready", ready.Status)
}

func TestStartRejectsMalformedInput(t *testing.T) {
	loader, _ := newLoader(t, "cat")
	var out bytes.Buffer

	err := newServer(loader, nil, "", bytes.NewReader([]byte{0xc1}), &out).Start()
	assert.Error(t, err)

	dec := msgpack.NewDecoder(&out)
	var ready StatusResponse
	require.NoError(t, dec.Decode(&ready))
	var resp ErrorResponse
	require.NoError(t, dec.Decode(&resp))
	assert.Equal(t, CodeBadRequest, resp.Code)
}

func TestStartKeepsServingAfterMistypedRequest(t *testing.T) {
	loader, _ := newLoader(t, "cat")
	c := startServer(t, loader, nil)

	require.NoError(t, c.enc.Encode(map[string]any{"id": "bad", "b": catBoard, "dl": "0,0"}))
	var bad ErrorResponse
	c.recv(&bad)
	assert.Equal(t, "bad", bad.ID)
	assert.Equal(t, CodeBadRequest, bad.Code)
	assert.Contains(t, bad.Error, "Invalid request")

	require.NoError(t, c.enc.Encode(42))
	var notMap ErrorResponse
	c.recv(&notMap)
	assert.Equal(t, CodeBadRequest, notMap.Code)

	c.send(Request{ID: "h", Action: ActionHealth})
	var health StatusResponse
	c.recv(&health)
	assert.Equal(t, "h", health.ID)
	assert.Equal(t, "ok", health.Status)
}
