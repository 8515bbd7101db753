package repository

import (
	"testing"

	"tnp-quickview/internal/entity"

	"github.com/stretchr/testify/assert"
)

func TestBuildDigestPrompt(t *testing.T) {
	t.Parallel()

	prompt := BuildDigestPrompt([]entity.NewsItem{
		{Title: "円安進行", Description: "ドルが上昇"},
		{Title: "日経平均続伸", Description: "買い優勢"},
	})

	assert.Contains(t, prompt, "1. 円安進行 - ドルが上昇\n")
	assert.Contains(t, prompt, "2. 日経平均続伸 - 買い優勢\n")
}
