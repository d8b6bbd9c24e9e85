package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/kbukum/promptkit/auth"
	"github.com/kbukum/promptkit/llm"
)

// fakeBackend answers both the Moonshot and the Ollama endpoints.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Messages []llm.Message `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		last := body.Messages[len(body.Messages)-1].Content
		reply := map[string]any{"choices": []map[string]any{{
			"message": map[string]string{"role": "assistant", "content": "echo: " + last},
		}}}
		_ = json.NewEncoder(w).Encode(reply)
	})
	mux.HandleFunc("GET /api/tags", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"models":[{"name":"qwen2.5:7b"}]}`))
	})
	mux.HandleFunc("POST /api/generate", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"Prompt: a fox in snow\nNegative Prompt: blurry","done":true}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	t.Setenv("MOONSHOT_API_KEY", "sk-test")
	t.Setenv("MOONSHOT_BASE_URL", srv.URL)
	t.Setenv("OLLAMA_BASE_URL", srv.URL)
	t.Setenv("LOGGING_LEVEL", "error")
	return srv
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cli := CLI{out: &out}
	parser, err := kong.New(&cli, kong.Name("promptkit"), kong.Exit(func(int) {}))
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	cli.Chat.in = strings.NewReader(stdin)
	err = kctx.Run(&cli)
	return out.String(), err
}

func TestChatCommand(t *testing.T) {
	fakeBackend(t)

	out, err := execute(t, "", "chat", "Capital of France?")
	if err != nil {
		t.Fatalf("chat failed: %v", err)
	}
	if strings.TrimSpace(out) != "echo: Capital of France?" {
		t.Errorf("output = %q", out)
	}
}

func TestChatRequiresPrompt(t *testing.T) {
	if _, err := execute(t, "", "chat"); err == nil {
		t.Error("expected error without a prompt")
	}
}

func TestChatUnknownModel(t *testing.T) {
	fakeBackend(t)

	out, err := execute(t, "", "chat", "--model", "gpt-4", "hi")
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
	if !strings.HasPrefix(out, "Error: ") {
		t.Errorf("output should carry the error text, got %q", out)
	}
}

func TestChatInteractive(t *testing.T) {
	fakeBackend(t)

	out, err := execute(t, "Hello\n/history\n/reset\nAgain\n", "chat", "-i", "-s", "Be brief.")
	if err != nil {
		t.Fatalf("chat -i failed: %v", err)
	}
	for _, want := range []string{
		"echo: Hello",
		"system: Be brief.",
		"assistant: echo: Hello",
		"conversation reset",
		"echo: Again",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestExtractCommand(t *testing.T) {
	fakeBackend(t)

	out, err := execute(t, "", "extract", "a fox", "--seed", "42", "--type", "sdxl")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	want := "Prompt: a fox in snow\nNegative Prompt: blurry\nSeed: 42\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestExtractCommandJSON(t *testing.T) {
	fakeBackend(t)

	out, err := execute(t, "", "extract", "a fox", "--json")
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	var res struct {
		PositivePrompt string `json:"positive_prompt"`
		Model          string `json:"model"`
		PromptType     string `json:"prompt_type"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if res.Model != "qwen2.5:7b" || res.PromptType != "sdxl" || res.PositivePrompt != "a fox in snow" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestExtractFlags(t *testing.T) {
	var cli CLI
	parser, err := kong.New(&cli, kong.Exit(func(int) {}))
	if err != nil {
		t.Fatalf("kong.New: %v", err)
	}
	if _, err := parser.Parse([]string{"extract", "sea"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	p := cli.Extract.params()
	if !p.Seed.IsRandom() || p.PromptType != "sdxl" || p.ExtraModel != "none" {
		t.Errorf("defaults not applied: %+v", p)
	}

	if _, err := parser.Parse([]string{"extract", "sea", "--type", "midjourney"}); err == nil {
		t.Error("expected enum error")
	}
	if _, err := parser.Parse([]string{"extract", "sea", "--seed", "-2"}); err == nil {
		t.Error("expected seed error")
	}
	if _, err := parser.Parse([]string{"extract", "sea", "--seed", "18446744073709551615"}); err != nil {
		t.Fatalf("max seed rejected: %v", err)
	}
	if v, _ := cli.Extract.Seed.Value(); v != 18446744073709551615 {
		t.Errorf("seed = %v", cli.Extract.Seed)
	}
}

func TestModelsCommand(t *testing.T) {
	fakeBackend(t)

	out, err := execute(t, "", "models", "--json")
	if err != nil {
		t.Fatalf("models failed: %v", err)
	}
	var models map[string][]string
	if err := json.Unmarshal([]byte(out), &models); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(models["moonshot"]) != 3 {
		t.Errorf("moonshot models = %v", models["moonshot"])
	}
	if strings.Join(models["ollama"], ",") != "qwen2.5:7b" {
		t.Errorf("ollama models = %v", models["ollama"])
	}
}

func TestTokenCommand(t *testing.T) {
	const secret = "0123456789abcdef0123456789abcdef"
	t.Setenv("SERVER_JWT_SECRET", secret)

	out, err := execute(t, "", "token", "workflow")
	if err != nil {
		t.Fatalf("token failed: %v", err)
	}
	svc, err := auth.NewService(auth.Config{Secret: secret})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	claims, err := svc.Parse(strings.TrimSpace(out))
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.Subject != "workflow" {
		t.Errorf("subject = %q", claims.Subject)
	}
}

func TestTokenCommandWithoutSecret(t *testing.T) {
	t.Setenv("SERVER_JWT_SECRET", "")
	if _, err := execute(t, "", "token"); err == nil {
		t.Error("expected error without a secret")
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "promptkit dev") {
		t.Errorf("output = %q", out)
	}
}
