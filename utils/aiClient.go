package utils

import (
	"fmt"
	"log"
	"medmacs/config"
	"time"

	"github.com/go-resty/resty/v2"
)

// AIQuestion is one generated MCQ returned by the AI endpoint. The answer
// text may carry an option-label prefix like "A) "; grading strips it.
type AIQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

type aiGenerateResponse struct {
	Questions []AIQuestion `json:"questions"`
}

type aiChatResponse struct {
	Answer string `json:"answer"`
}

// GenerateAITest calls the AI generation endpoint. Single attempt, no retry:
// a non-2xx response surfaces as an error for the caller's toast.
func GenerateAITest(topic, difficulty string, questionCount int, customPrompt string) ([]AIQuestion, error) {
	client := resty.New().SetTimeout(60 * time.Second)

	var result aiGenerateResponse
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.AIApiKey).
		SetBody(map[string]interface{}{
			"topic":         topic,
			"difficulty":    difficulty,
			"questionCount": questionCount,
			"customPrompt":  customPrompt,
		}).
		SetResult(&result).
		Post(config.AppConfig.AIGenerateUrl)
	if err != nil {
		log.Printf("AI generate request failed: %v", err)
		return nil, err
	}
	if resp.StatusCode() != 200 {
		log.Printf("AI generate returned %d: %s", resp.StatusCode(), resp.String())
		return nil, fmt.Errorf("AI service returned status %d", resp.StatusCode())
	}
	if len(result.Questions) == 0 {
		return nil, fmt.Errorf("AI service returned no questions")
	}

	return result.Questions, nil
}

// AskAIChat calls the AI study-chat endpoint with a topic-scoped question
func AskAIChat(topic, question string) (string, error) {
	client := resty.New().SetTimeout(30 * time.Second)

	var result aiChatResponse
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.AIApiKey).
		SetBody(map[string]string{
			"topic":    topic,
			"question": question,
		}).
		SetResult(&result).
		Post(config.AppConfig.AIChatUrl)
	if err != nil {
		log.Printf("AI chat request failed: %v", err)
		return "", err
	}
	if resp.StatusCode() != 200 {
		log.Printf("AI chat returned %d: %s", resp.StatusCode(), resp.String())
		return "", fmt.Errorf("AI service returned status %d", resp.StatusCode())
	}

	return result.Answer, nil
}
