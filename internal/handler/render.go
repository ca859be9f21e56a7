package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aryandumale04/SmartPrep/internal/airesponse"
	"github.com/aryandumale04/SmartPrep/pkg/model"
	"github.com/aryandumale04/SmartPrep/pkg/response"
)

// Render normalizes any AI response shape to Markdown and renders it
func (h *Handler) Render(c *gin.Context) {
	var req model.RenderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	md := airesponse.Normalize(airesponse.FromJSON(req.Content))
	out, err := h.Renderer.Render(md)
	if err != nil {
		h.Logger.Error("render: failed", zap.Error(err))
		response.InternalError(c, "failed to render content")
		return
	}
	response.OK(c, model.RenderRes{Markdown: md, HTML: out})
}

// Stylesheet serves the syntax highlighting CSS for rendered code blocks
func (h *Handler) Stylesheet(c *gin.Context) {
	css, err := h.Renderer.Stylesheet()
	if err != nil {
		h.Logger.Error("stylesheet: failed", zap.Error(err))
		response.InternalError(c, "")
		return
	}
	response.Asset(c, "text/css; charset=utf-8", []byte(css))
}

func (h *Handler) Healthz(c *gin.Context) {
	response.OK(c, gin.H{"status": "ok"})
}
