package service

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Stage is the state of one request in the detection pipeline. Stages only
// move forward; StageFailed is terminal and reachable from any other stage.
type Stage int

// Pipeline stages in execution order
const (
	StageReceived Stage = iota
	StageFetching
	StageLoading
	StageDetecting
	StageFiltering
	StageCleaning
	StageResponded
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageReceived:
		return "received"
	case StageFetching:
		return "fetching"
	case StageLoading:
		return "loading"
	case StageDetecting:
		return "detecting"
	case StageFiltering:
		return "filtering"
	case StageCleaning:
		return "cleaning"
	case StageResponded:
		return "responded"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// pipeline tracks the stage of one request and mirrors transitions into the
// request span.
type pipeline struct {
	logger *zap.Logger
	span   trace.Span
	stage  Stage
}

func (p *pipeline) transition(to Stage) {
	if p.stage == StageFailed {
		return
	}
	p.logger.Debug("Pipeline stage",
		zap.Stringer("from", p.stage),
		zap.Stringer("to", to))
	p.span.AddEvent(to.String())
	p.stage = to
}

func (p *pipeline) fail(err error) {
	if p.stage == StageFailed {
		return
	}
	p.logger.Error("Detection failed",
		zap.Stringer("stage", p.stage),
		zap.Error(err))
	p.span.RecordError(err)
	p.span.SetStatus(codes.Error, err.Error())
	p.span.SetAttributes(attribute.String("failed_stage", p.stage.String()))
	p.stage = StageFailed
}
