// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/api/auth/loginエンドポイントのリクエストボディを表します。
// 必須チェックや形式チェックは行わず、空の値や不正な形式は存在しないメールアドレスと同じく認証失敗として扱います。
type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
