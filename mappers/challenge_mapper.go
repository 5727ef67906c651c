package mappers

import (
	"github.com/Kamesh-the-hacker/CTF/dto"
	"github.com/Kamesh-the-hacker/CTF/models"
)

// MapChallengeToUserItem 用户视角映射：带 solved 标记，刻意不搬运 Flag
func MapChallengeToUserItem(ch models.Challenge, solved bool) dto.ChallengeItemResp {
	return dto.ChallengeItemResp{
		ID:          ch.ID,
		Title:       ch.Title,
		Category:    ch.Category,
		Description: ch.Description,
		Points:      ch.Points,
		File:        ch.File,
		Link:        ch.Link,
		Solved:      solved,
	}
}

// MapChallengeToAdminItem 管理员视角映射：完整字段含 Flag
func MapChallengeToAdminItem(ch models.Challenge) dto.AdminChallengeItemResp {
	return dto.AdminChallengeItemResp{
		ID:          ch.ID,
		Title:       ch.Title,
		Category:    ch.Category,
		Description: ch.Description,
		Flag:        ch.Flag,
		Points:      ch.Points,
		File:        ch.File,
		Link:        ch.Link,
	}
}

// MapCreateReqToChallenge 创建请求到模型的手动映射，storedFile 为附件存储名
func MapCreateReqToChallenge(req dto.CreateChallengeReq, storedFile string) models.Challenge {
	return models.Challenge{
		Title:       req.Title,
		Category:    req.Category,
		Description: req.Description,
		Flag:        req.Flag,
		Points:      req.Points,
		File:        storedFile,
		Link:        req.Link,
	}
}
