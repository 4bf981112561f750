package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kpidashboard/config"
	"kpidashboard/models"

	"google.golang.org/genai"
)

// ReportProvider turns a prompt into report text.
type ReportProvider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (ReportProvider, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errors.New("empty response from model")
	}

	log.WithField("model", p.model).Debugf("Report generated, %d characters", len(text))
	return text, nil
}

type kpiSummary struct {
	Name       string `json:"tenKPI"`
	Objective  string `json:"mucTieu"`
	Assignee   string `json:"nguoiThucHien"`
	Completion string `json:"tiLeHoanThanh"`
	Result     string `json:"ketQua"`
}

var scopeNouns = map[models.ReportScope]string{
	models.ScopeCompany:  "công ty",
	models.ScopeTeam:     "phòng ban",
	models.ScopeEmployee: "nhân viên",
}

// BuildReportPrompt renders the KPIs of the input as the prompt sent to the
// model. Assignees that no longer exist are reported as N/A.
func BuildReportPrompt(input models.ReportInput) string {
	names := make(map[string]string, len(input.Employees))
	for _, e := range input.Employees {
		names[e.ID] = e.Name
	}

	summary := make([]kpiSummary, 0, len(input.KPIs))
	for _, k := range input.KPIs {
		assignee, ok := names[k.AssigneeID]
		if !ok {
			assignee = "N/A"
		}
		summary = append(summary, kpiSummary{
			Name:       k.Name,
			Objective:  k.Objective,
			Assignee:   assignee,
			Completion: fmt.Sprintf("%g%%", k.Completion),
			Result:     k.Result.Label(),
		})
	}

	// Marshalling plain strings cannot fail.
	data, _ := json.MarshalIndent(summary, "", "  ")

	noun, ok := scopeNouns[input.Scope]
	if !ok {
		noun = string(input.Scope)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Bạn là chuyên gia quản trị nhân sự. Hãy viết báo cáo đánh giá KPI tháng %d/%d của %s '%s' dựa trên dữ liệu sau.\n\n",
		input.Month, input.Year, noun, input.ScopeName)
	b.WriteString("Dữ liệu KPI:\n")
	b.Write(data)
	b.WriteString("\n\nBáo cáo viết bằng markdown, gồm các mục:\n")
	b.WriteString("1. **Tổng quan:** nhận xét chung về hiệu suất trong tháng.\n")
	b.WriteString("2. **Điểm mạnh:** các KPI hoàn thành xuất sắc và thành tích nổi bật.\n")
	b.WriteString("3. **Điểm yếu:** các KPI chưa đạt hoặc cần cải thiện, kèm nguyên nhân có thể.\n")
	b.WriteString("4. **Đề xuất:** hành động cụ thể để cải thiện trong tháng tới.\n\n")
	b.WriteString("Trình bày chuyên nghiệp, rõ ràng và ngắn gọn.\n")
	return b.String()
}
