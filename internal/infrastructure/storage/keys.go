package storage

import (
	"fmt"

	"github.com/google/uuid"
)

// 写真オブジェクトのキー形式: groups/{group_id}/photos/{photo_id}[/...]
const groupsRoot = "groups"

// GroupMediaPrefix はグループ配下の全オブジェクトに共通するプレフィックスを返します
func GroupMediaPrefix(groupID uuid.UUID) string {
	return fmt.Sprintf("%s/%s/", groupsRoot, groupID)
}

// PhotoKey は写真オブジェクトのキーを返します
func PhotoKey(groupID, photoID uuid.UUID) string {
	return fmt.Sprintf("%sphotos/%s", GroupMediaPrefix(groupID), photoID)
}
