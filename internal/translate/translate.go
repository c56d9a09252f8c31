package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awstranslate "github.com/aws/aws-sdk-go-v2/service/translate"
	"go.uber.org/zap"

	"github.com/shari-07/search-api/internal/config"
)

// Translator 文本翻译接口
// Translate 返回目标语言文本；失败时返回错误，由调用方回退为原文
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// AWS 基于 Amazon Translate 的翻译器
type AWS struct {
	client     *awstranslate.Client
	sourceLang string
	logger     *zap.Logger
}

// NewAWS 创建 Amazon Translate 翻译器
func NewAWS(ctx context.Context, cfg config.TranslateConfig, logger *zap.Logger) (*AWS, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	sourceLang := cfg.SourceLang
	if sourceLang == "" {
		sourceLang = "auto"
	}

	return &AWS{
		client:     awstranslate.NewFromConfig(awsCfg),
		sourceLang: sourceLang,
		logger:     logger,
	}, nil
}

// Translate 翻译单段文本
// 目标语言为 zh 或文本为空时直接返回原文，不调用接口
func (a *AWS) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if targetLang == "" || strings.EqualFold(targetLang, "zh") {
		return text, nil
	}
	if strings.TrimSpace(text) == "" {
		return text, nil
	}

	out, err := a.client.TranslateText(ctx, &awstranslate.TranslateTextInput{
		Text:               aws.String(text),
		SourceLanguageCode: aws.String(a.sourceLang),
		TargetLanguageCode: aws.String(targetLang),
	})
	if err != nil {
		a.logger.Warn("translate request failed",
			zap.String("target_lang", targetLang),
			zap.Error(err))
		return "", err
	}
	if out.TranslatedText == nil {
		return text, nil
	}
	return *out.TranslatedText, nil
}

// Noop 不做任何翻译的占位实现，用于翻译未启用时
type Noop struct{}

// Translate 原样返回文本
func (Noop) Translate(_ context.Context, text, _ string) (string, error) {
	return text, nil
}
