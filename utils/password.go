package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword 生成 bcrypt 哈希。
// The random salt and the cost factor are both embedded in the returned
// string, so verification needs no external configuration.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPasswordHash 校验明文密码。比较是常数时间的，失败只返回 false。
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
