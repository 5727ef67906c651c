package controllers

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/Kamesh-the-hacker/CTF/dto"
	"github.com/Kamesh-the-hacker/CTF/mappers"
	"github.com/Kamesh-the-hacker/CTF/middlewares"
	"github.com/Kamesh-the-hacker/CTF/services"
	"github.com/Kamesh-the-hacker/CTF/utils"
	"github.com/gin-gonic/gin"
)

// ChallengeController 题目目录：用户只读（带 solved 标记），管理员增删改
type ChallengeController struct {
	challenges *services.ChallengeService
	uploadDir  string
}

func NewChallengeController(challenges *services.ChallengeService, uploadDir string) *ChallengeController {
	return &ChallengeController{challenges: challenges, uploadDir: uploadDir}
}

// saveAttachment 可选的 "file" 字段落盘，返回不透明存储名；没有上传时返回空串
func (ctl *ChallengeController) saveAttachment(c *gin.Context) (string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		// 没有附件是正常情况
		return "", nil
	}
	if err := os.MkdirAll(ctl.uploadDir, 0o755); err != nil {
		return "", err
	}
	stored := utils.GenerateStoredName(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(ctl.uploadDir, stored)); err != nil {
		return "", err
	}
	return stored, nil
}

// List 按角色分流：管理员拿完整记录（含 Flag），用户拿带 solved 标记的脱敏列表。
// 同时持有两种登录态时按管理员处理（管理面板需要核对 Flag）
func (ctl *ChallengeController) List(c *gin.Context) {
	sess := middlewares.GetSession(c)

	if sess.Admin != nil {
		items, err := ctl.challenges.ListForAdmin(c.Request.Context())
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.Success(c, "success", gin.H{"total": len(items), "challenges": items})
		return
	}

	items, err := ctl.challenges.ListForUser(c.Request.Context(), sess.User.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "success", gin.H{"total": len(items), "challenges": items})
}

// Create 新建题目（multipart，附件可选）
func (ctl *ChallengeController) Create(c *gin.Context) {
	var req dto.CreateChallengeReq
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	stored, err := ctl.saveAttachment(c)
	if err != nil {
		utils.Error(c, utils.CodeStorage, "保存附件失败")
		return
	}

	challenge := mappers.MapCreateReqToChallenge(req, stored)
	if err := ctl.challenges.Create(c.Request.Context(), &challenge); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Challenge created successfully", gin.H{"id": challenge.ID})
}

// Update 编辑题目。未上传新附件时保留旧的存储引用
func (ctl *ChallengeController) Update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(c, utils.CodeNotFound, "题目不存在")
		return
	}

	var req dto.UpdateChallengeReq
	if err := c.ShouldBind(&req); err != nil {
		utils.Error(c, utils.CodeInvalidParam, "参数无效: "+err.Error())
		return
	}
	req.Normalize()

	stored, err := ctl.saveAttachment(c)
	if err != nil {
		utils.Error(c, utils.CodeStorage, "保存附件失败")
		return
	}

	if err := ctl.challenges.Update(c.Request.Context(), uint32(id), &req, stored); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Challenge updated successfully", nil)
}

// Delete 删除题目
func (ctl *ChallengeController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(c, utils.CodeNotFound, "题目不存在")
		return
	}
	if err := ctl.challenges.Delete(c.Request.Context(), uint32(id)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.Success(c, "Challenge deleted successfully", nil)
}
