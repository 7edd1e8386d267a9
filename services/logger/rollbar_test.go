package logsvc

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/studentportal/core"
)

type person struct{ id, name, email string }

func (p person) LogPerson() (id, name, email string) { return p.id, p.name, p.email }

func newTestLogger() (*RollbarLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST", TestMode: true}), &buf
}

func TestRollbarLogger_print(t *testing.T) {
	tests := []struct {
		name  string
		log   func(l *RollbarLogger)
		want  string
		never string
	}{
		{
			name: "info",
			log:  func(l *RollbarLogger) { l.Info("server started") },
			want: "INFO server started\n",
		},
		{
			name: "warn with error",
			log:  func(l *RollbarLogger) { l.Warn("reading collection", errors.New("corrupt")) },
			want: "WARN reading collection\ncorrupt\n",
		},
		{
			name: "error about a person",
			log: func(l *RollbarLogger) {
				l.Error("saving student", errors.New("disk full"), person{"stu_1", "Ada", "ada@test.cd"})
			},
			want:  "ERROR saving student\ndisk full\n",
			never: "ada@test.cd",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, buf := newTestLogger()
			tt.log(l)
			assert.Equal(t, tt.want, buf.String())
			if tt.never != "" {
				assert.NotContains(t, buf.String(), tt.never)
			}
		})
	}
}

func TestRollbarLogger_prepare(t *testing.T) {
	l, _ := newTestLogger()
	err := errors.New("boom")
	extra := map[string]interface{}{"key": "students"}

	got := l.prepare("msg", []interface{}{err, person{id: "stu_1"}, extra, person{id: "stu_2"}})
	assert.Equal(t, []interface{}{"msg", err, extra}, got)
}
