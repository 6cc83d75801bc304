package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randomtoy/cropreport-go/internal/domain"
)

func fakeOllama(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"response": text, "done": true})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func sampleReport() domain.ReportResult {
	return domain.ReportResult{
		Score:                  "7/10",
		Overview:               "Suitable.",
		KeyObservations:        "Good drainage.",
		Assessments:            "80% of optimal.",
		SoilAndWeatherAnalysis: "Neutral pH.",
		FertilizerEvaluation:   "Adequate.",
		FarmingRecommendation:  "Sow early.",
		SuggestedFarmingMethod: "Ridge and furrow.",
		AlternativeCrops:       "Sorghum.",
		Recommendations:        "Split nitrogen doses.",
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func inputArgs(baseURL string) []string {
	return []string{
		"generate",
		"--base-url", baseURL,
		"--model", "mistral",
		"--soil-type", "Black soil",
		"--crop", "Cotton",
		"--crop-variant", "Bt",
		"--previous-crop", "Groundnut",
		"--fertilizer", "Urea",
		"--irrigation", "Drip",
		"--acres", "2.5",
	}
}

func TestGenerate_TextOutput(t *testing.T) {
	body, _ := json.Marshal(sampleReport())
	srv := fakeOllama(t, http.StatusOK, "Here is your report:\n"+string(body))

	stdout, _, err := execute(t, inputArgs(srv.URL)...)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "Score:\n7/10\n"))
	assert.Contains(t, stdout, "Alternative Crops:\nSorghum.\n")
	assert.Contains(t, stdout, "Recommendations:\nSplit nitrogen doses.\n")
}

func TestGenerate_JSONOutput(t *testing.T) {
	body, _ := json.Marshal(sampleReport())
	srv := fakeOllama(t, http.StatusOK, string(body))

	stdout, _, err := execute(t, append(inputArgs(srv.URL), "-o", "json")...)
	require.NoError(t, err)

	var got domain.ReportResult
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, sampleReport(), got)
}

func TestGenerate_MissingInput(t *testing.T) {
	_, stderr, err := execute(t, "generate", "--crop", "Cotton", "--base-url", "http://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, stderr, "[invalid_request]")
}

func TestGenerate_UpstreamFailure(t *testing.T) {
	srv := fakeOllama(t, http.StatusInternalServerError, "")

	_, stderr, err := execute(t, inputArgs(srv.URL)...)
	require.Error(t, err)
	assert.Contains(t, stderr, "[transport_error]")
}

func TestGenerate_BadOutputFlag(t *testing.T) {
	_, _, err := execute(t, append(inputArgs("http://127.0.0.1:1"), "-o", "yaml")...)
	assert.ErrorContains(t, err, "--output")
}

func TestGenerate_ModelFromEnvironment(t *testing.T) {
	t.Setenv("LLM_MODEL", "gemma2")
	body, _ := json.Marshal(sampleReport())

	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		_ = json.NewEncoder(w).Encode(map[string]any{"response": string(body), "done": true})
	}))
	t.Cleanup(srv.Close)

	// Drop --model so the environment supplies it.
	args := inputArgs(srv.URL)
	args = append(args[:3], args[5:]...)

	_, _, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, "gemma2", gotModel)
}

func TestGenerate_FlagBeatsEnvironment(t *testing.T) {
	t.Setenv("LLM_MODEL", "gemma2")

	var gotModel string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Model string `json:"model"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, _, _ = execute(t, inputArgs(srv.URL)...)
	assert.Equal(t, "mistral", gotModel)
}

func TestGenerate_BrokenEnvironment(t *testing.T) {
	t.Setenv("LLM_TIMEOUT", "soon")

	_, _, err := execute(t, inputArgs("http://127.0.0.1:1")...)
	assert.ErrorContains(t, err, "LLM_TIMEOUT")
}
