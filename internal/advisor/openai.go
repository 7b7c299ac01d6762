package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabomartinez21/invesment-track/internal/model"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Advisor asks a language model for a short prose take on one holding.
// Its output is advisory only: it is appended to the digest and never
// changes the deterministic BUY/SELL/HOLD score.
type Advisor struct {
	APIKey string
	Model  string
	Client *http.Client
}

// New creates an Advisor with optional proxy support.
func New(apiKey, modelName, proxyURL string) *Advisor {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	return &Advisor{
		APIKey: apiKey,
		Model:  modelName,
		Client: &http.Client{
			Timeout:   60 * time.Second,
			Transport: transport,
		},
	}
}

// Request carries the per-holding context for the prompt.
type Request struct {
	Ticker     string
	Company    string
	Price      float64
	PrevClose  float64
	Holding    model.Holding
	Indicators model.IndicatorSet
	Articles   []model.NewsArticle
}

// Analysis is the parsed model reply.
type Analysis struct {
	Recommendation string // COMPRAR, VENDER or MANTENER
	FullText       string
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Analyze sends the holding's context to the model and parses the
// COMPRAR/VENDER/MANTENER verdict from the reply.
func (a *Advisor) Analyze(ctx context.Context, req Request) (*Analysis, error) {
	payload := chatRequest{
		Model: a.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "Eres un analista financiero conciso. Responde en español."},
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: 0.4,
		MaxTokens:   600,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.APIKey)

	resp, err := a.Client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openai: status %d, body: %s", resp.StatusCode, string(respBody))
	}

	var out chatResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("openai decode: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("openai api error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty response")
	}

	text := out.Choices[0].Message.Content
	return &Analysis{
		Recommendation: parseRecommendation(text),
		FullText:       text,
	}, nil
}

func buildPrompt(req Request) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analiza %s (%s). Precio actual: $%.2f", req.Company, req.Ticker, req.Price)
	if req.PrevClose > 0 {
		fmt.Fprintf(&b, " (cierre anterior $%.2f)", req.PrevClose)
	}
	b.WriteString("\n\n")

	if req.Holding.Quantity > 0 {
		fmt.Fprintf(&b, "Posición: %.2f acciones a costo promedio $%.2f. Peso objetivo %.1f%%.\n",
			req.Holding.Quantity, req.Holding.AvgCost, req.Holding.TargetWeight)
	}
	if req.Holding.Notes != "" {
		fmt.Fprintf(&b, "Notas del inversor: %s\n", req.Holding.Notes)
	}

	b.WriteString("\nIndicadores técnicos:\n")
	fmt.Fprintf(&b, "- RSI(14): %s\n", req.Indicators.RSI14)
	fmt.Fprintf(&b, "- MACD hist: %s\n", req.Indicators.MACDHist)
	fmt.Fprintf(&b, "- SMA50: %s | SMA200: %s\n", req.Indicators.SMA50, req.Indicators.SMA200)
	fmt.Fprintf(&b, "- Volatilidad anualizada: %s\n", req.Indicators.Volatility)

	b.WriteString("\nFundamentales:\n")
	fmt.Fprintf(&b, "- P/E: %s | Dividendo: %s | Beta: %s\n",
		req.Indicators.PE, req.Indicators.DividendYield, req.Indicators.Beta)
	fmt.Fprintf(&b, "- Precio objetivo analistas: %s\n", req.Indicators.TargetPrice)

	if len(req.Articles) > 0 {
		b.WriteString("\nTitulares recientes:\n")
		for i, a := range req.Articles {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s (%s)\n", a.Title, a.Source)
		}
	}

	b.WriteString("\nTermina tu respuesta con una línea en el formato:\n")
	b.WriteString("[COMPRAR / VENDER / MANTENER] - justificación en 2-3 líneas\n")

	return b.String()
}

func parseRecommendation(text string) string {
	upper := strings.ToUpper(text)
	// The verdict line comes last; whichever keyword appears last wins.
	verdict, best := "MANTENER", -1
	for _, v := range []string{"COMPRAR", "VENDER", "MANTENER"} {
		if i := strings.LastIndex(upper, v); i > best {
			verdict, best = v, i
		}
	}
	return verdict
}
