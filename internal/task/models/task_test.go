package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTaskClassify(t *testing.T) {
	finalized := time.Date(2015, 3, 1, 12, 0, 0, 0, time.UTC)
	rejection := &Rejection{Reason: RejectionDuplicate}

	tests := []struct {
		name string
		task Task
		want Status
	}{
		{
			name: "untouched task",
			task: Task{},
			want: StatusNotYetFinalized,
		},
		{
			name: "finalized",
			task: Task{FinalizedAt: &finalized},
			want: StatusFinalized,
		},
		{
			name: "rejected",
			task: Task{FinalizedAt: &finalized, RejectionReason: rejection},
			want: StatusRejected,
		},
		{
			name: "returned to legacy queue",
			task: Task{FinalizedAt: &finalized, ReturnedToLegacyQueue: true},
			want: StatusReturnedToLegacyQueue,
		},
		{
			name: "returned wins over rejection",
			task: Task{FinalizedAt: &finalized, ReturnedToLegacyQueue: true, RejectionReason: rejection},
			want: StatusReturnedToLegacyQueue,
		},
		{
			name: "markers without finalization timestamp stay open",
			task: Task{ReturnedToLegacyQueue: true, RejectionReason: rejection},
			want: StatusNotYetFinalized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.task.Classify())
		})
	}
}

func TestOriginLabel(t *testing.T) {
	assert.Equal(t, "Skannet sykmelding", OriginScanning.Label())
	assert.Equal(t, "Digital utenlandsk sykmelding", OriginForeignDigital.Label())
	assert.Equal(t, "Papirsykmelding", OriginDomesticPaper.Label())
}
