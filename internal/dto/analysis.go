package dto

type AnalyzeRequest struct {
	Conversation string `json:"conversation"`
}

type AnalyzeResponse struct {
	ScamDetected   bool     `json:"scam_detected"`
	RiskScore      int      `json:"risk_score"`
	Pattern        string   `json:"pattern"`
	MatchedPhrases []string `json:"matched_phrases"`
	ResponseText   string   `json:"response_text"`
	ContextUsed    string   `json:"context_used"`
}

type PostCallAnalysisRequest struct {
	Conversation string `json:"conversation"`
	Pattern      string `json:"pattern,omitempty"`
	Confidence   int    `json:"confidence,omitempty"`
}

type PostCallAnalysisResponse struct {
	Explanation string `json:"explanation"`
	AudioBase64 string `json:"audio_base64,omitempty"`
	ContextUsed string `json:"context_used"`
	Pattern     string `json:"pattern"`
	Confidence  int    `json:"confidence"`
	Success     bool   `json:"success"`
}

type AnalyzeStreamResponse struct {
	AudioBase64 string `json:"audio_base64,omitempty"`
	Text        string `json:"text"`
	Error       string `json:"error,omitempty"`
	Success     bool   `json:"success"`
}
