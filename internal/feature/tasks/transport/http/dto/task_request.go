// Package dto はtasksフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// CreateTaskReq は POST /api/tasks のリクエストボディです。
// タイトルの必須チェックはusecaseで行います。
type CreateTaskReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskReq は PUT /api/tasks/:id のリクエストボディです。
// 省略されたフィールドは変更されません。id, ownerId, createdAt などは受け付けず無視します。
type UpdateTaskReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
