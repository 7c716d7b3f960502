package mocks

import (
	"fmt"
	"strings"
)

// MockLogger はテスト用のロガーモック
type MockLogger struct {
	Messages []string
}

// NewMockLogger は新しいMockLoggerを作成します
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// Printf はメッセージを記録します
func (l *MockLogger) Printf(format string, v ...interface{}) {
	l.Messages = append(l.Messages, fmt.Sprintf(format, v...))
}

// Contains は記録されたメッセージに部分文字列が含まれるか確認します
func (l *MockLogger) Contains(substr string) bool {
	for _, msg := range l.Messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}
