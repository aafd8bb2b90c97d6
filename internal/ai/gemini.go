// README: Gemini-backed bid source (JSON mode, schema-by-prompt).
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"seabid/internal/modules/trip"
)

// GeminiSource implements Source using Google's Gemini models.
type GeminiSource struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiSource initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiSource(ctx context.Context, apiKey string) (*GeminiSource, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency; bidding UX depends on fast first bids.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Some creative spread across captains, but keep the schema stable.
	model.SetTemperature(0.4)

	return &GeminiSource{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (s *GeminiSource) Close() {
	s.client.Close()
}

// GenerateBids asks the model for 3-5 captain quotes against the request and
// sanitizes the result into domain bids.
func (s *GeminiSource) GenerateBids(ctx context.Context, req trip.Request) ([]trip.Bid, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(buildBidPrompt(req)))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// JSON mode should already be clean, but strip markdown fences anyway.
	cleanJSON := cleanJSONString(responseText.String())

	var payloads []bidPayload
	if err := json.Unmarshal([]byte(cleanJSON), &payloads); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}
	return sanitizeBids(payloads), nil
}

// buildBidPrompt constructs the instructions for the AI.
func buildBidPrompt(req trip.Request) string {
	pricing := "拼船，报价按人均"
	if req.Type == trip.OrderCharter {
		pricing = "包船，报价按整船"
	}
	filters := "无"
	if f := req.Filters; f != nil {
		filters = fmt.Sprintf("船长≥%.0f米, 船宽≥%.0f米, 动力≥%s, 设施%v",
			f.MinLengthM, f.MinWidthM, f.MinPower, f.Amenities)
	}

	return fmt.Sprintf(`Role: 你是海钓平台的报价撮合后端。根据用户需求生成 3 到 5 条精选船长报价。

需求：
- 出发城市：%s
- 日期：%s
- 人数：%d
- 钓法偏好：%s
- 订单类型：%s
- 备注：%s
- 船只筛选：%s

格式要求：
1. 每条报价必须包含 routeInfo：destination(简短钓点), targetFish(主攻鱼),
   name(方案名，格式 "[destination]钓[targetFish]"), oceanType('NEAR'|'FAR')。
2. includedServices：从 ['gear','bait','insurance','drinks','guide','media'] 中选 3 个英文 ID。
3. manualIntro：一句简短的专业自备建议。
4. price 为正整数（人民币）；rating 介于 4.0 与 5.0 之间；distance 为码头距离公里数。

Output JSON Schema (array of objects):
[{
  "id": "string",
  "captainName": "string",
  "boatName": "string",
  "boatSpecs": "string",
  "distance": number,
  "price": number,
  "rating": number,
  "tripsCount": integer,
  "includedServices": ["string"],
  "manualIntro": "string",
  "routeInfo": {
    "name": "string",
    "oceanType": "NEAR" | "FAR",
    "destination": "string",
    "targetFish": "string"
  }
}]
`, req.City, req.Date, req.People, req.Style, pricing, req.Remarks, filters)
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
