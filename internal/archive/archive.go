package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const collectionName = "raw_responses"

// Store 原始响应归档
// 每次上游拉取的原始字节都落一份，排查价格或属性差异时可以回放
type Store struct {
	db     *mongo.Database
	logger *zap.Logger
}

// NewStore 创建归档存储，db 为 nil 时所有操作都是空操作
func NewStore(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{db: db, logger: logger}
}

// Enabled 归档是否可用
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

// SaveRaw 归档一份原始响应
// 归档失败只记日志，绝不影响请求链路
func (s *Store) SaveRaw(ctx context.Context, platform, itemID string, raw []byte) {
	if !s.Enabled() || len(raw) == 0 {
		return
	}

	doc := bson.M{
		"platform":   platform,
		"item_id":    itemID,
		"created_at": time.Now(),
	}

	// 能解析成 JSON 就存结构化文档，否则存原始字符串
	var parsed interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		doc["raw_data"] = string(raw)
	} else {
		doc["payload"] = parsed
	}

	collection := s.db.Collection(collectionName)
	result, err := collection.InsertOne(ctx, doc)
	if err != nil {
		s.logger.Error("failed to archive raw response",
			zap.String("platform", platform),
			zap.String("item_id", itemID),
			zap.Error(err))
		return
	}

	s.logger.Debug("raw response archived",
		zap.String("platform", platform),
		zap.String("item_id", itemID),
		zap.Any("inserted_id", result.InsertedID))
}

// CleanupBefore 删除某时间点之前的归档文档，返回删除数量
func (s *Store) CleanupBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if !s.Enabled() {
		return 0, nil
	}

	collection := s.db.Collection(collectionName)
	result, err := collection.DeleteMany(ctx, bson.M{
		"created_at": bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete archived documents: %w", err)
	}

	return result.DeletedCount, nil
}
