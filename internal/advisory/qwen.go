package advisory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"AShareSentinel/internal/config"
	"AShareSentinel/internal/model"
)

// Upstream allows 2 requests per second on the compatible-mode endpoint;
// the limiter keeps a burst of scored candidates from tripping 429s.
const requestsPerSecond = 2

// QwenAdvisor calls an OpenAI-compatible chat endpoint (DashScope qwen
// models by default) for a one-paragraph rationale in Chinese.
type QwenAdvisor struct {
	client  *resty.Client
	limiter *rate.Limiter
	model   string
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
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

func NewQwenAdvisor(cfg *config.Config) *QwenAdvisor {
	client := resty.New().
		SetBaseURL(cfg.Advisory.BaseURL).
		SetTimeout(time.Duration(cfg.Advisory.TimeoutSeconds) * time.Second).
		SetAuthToken(cfg.Advisory.APIKey).
		SetHeader("Content-Type", "application/json")
	if cfg.Proxy != "" {
		client.SetProxy(cfg.Proxy)
	}
	return &QwenAdvisor{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
		model:   cfg.Advisory.Model,
	}
}

func (a *QwenAdvisor) Name() string { return a.model }

func (a *QwenAdvisor) Explain(ctx context.Context, c model.Candidate, comp model.ComponentScores, composite float64) (string, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return "", &AdvisoryError{Op: "rate wait", Err: err}
	}

	req := chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(c, comp, composite)},
		},
	}

	var out chatResponse
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/chat/completions")
	if err != nil {
		return "", &AdvisoryError{Op: "chat completion", Err: err}
	}
	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", &AdvisoryError{Op: "chat completion", Err: fmt.Errorf("%s", msg)}
	}
	if len(out.Choices) == 0 {
		return "", &AdvisoryError{Op: "chat completion", Err: fmt.Errorf("empty choices")}
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}

const systemPrompt = "你是一名A股短线交易研究员。根据给出的量化打分数据，用一段不超过80字的中文说明这只股票为何值得或不值得关注，语气克制，不构成投资建议。"

func buildPrompt(c model.Candidate, comp model.ComponentScores, composite float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "股票: %s(%s) 策略: %s 排名: 第%d\n", c.Name, c.Symbol, c.Strategy.Label(), c.Rank)
	fmt.Fprintf(&b, "现价: %.2f 涨幅: %.2f%% 换手率: %.2f%% 量比: %.2f\n", c.Price, c.ChangePct, c.Turnover, c.VolumeRatio)
	fmt.Fprintf(&b, "分项得分: 量能%.0f/40 趋势%.0f/30 形态%.0f/20 情绪%.0f/10 综合%.0f/100",
		comp.Volume, comp.Trend, comp.Pattern, comp.Sentiment, composite)
	return b.String()
}
