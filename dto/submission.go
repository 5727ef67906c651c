package dto

type SubmitFlagReq struct {
	// Flag 不加 required：空串也是合法的候选答案，交给判定逻辑按答错处理
	ChallengeID uint32 `json:"challengeId" binding:"required"`
	Flag        string `json:"flag"`
}

// SubmitFlagResp 解题成功的响应：新总分 + 该用户视角刷新后的题目列表
type SubmitFlagResp struct {
	NewScore   uint                `json:"new_score"`
	Challenges []ChallengeItemResp `json:"updated_challenges"`
}
