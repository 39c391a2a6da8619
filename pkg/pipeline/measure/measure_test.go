package measure_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lossplot/pkg/pipeline/measure"
	"github.com/askiada/go-lossplot/pkg/pipeline/model"
)

func TestDefaultMetric(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	mt := msr.AddMetric("parse", 2)

	mt.AddDuration(2 * time.Millisecond)
	mt.AddDuration(4 * time.Millisecond)
	mt.AddTransportDuration("read", 8*time.Millisecond)
	mt.AddTransportDuration("read", 4*time.Millisecond)

	assert.Equal(t, int64(2), mt.Total())
	assert.Equal(t, 3*time.Millisecond, mt.AVGDuration())
	assert.Equal(t, map[string]time.Duration{"read": 3 * time.Millisecond}, mt.AVGTransportDuration())
	// averages are computed on every call
	assert.Equal(t, map[string]time.Duration{"read": 3 * time.Millisecond}, mt.AVGTransportDuration())
}

func TestDefaultMeasureUnknownMetric(t *testing.T) {
	t.Parallel()

	assert.Nil(t, measure.NewDefaultMeasure().GetMetric("unknown"))
}

func TestPipelineMeasureSkipsRootStep(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()
	opt := measure.PipelineMeasure(msr)

	root := &model.StepInfo{Type: model.RootStepType, Name: "read", Concurrent: 1}
	step := &model.StepInfo{Type: model.NormalStepType, Name: "parse", Concurrent: 1}
	sink := &model.StepInfo{Type: model.SinkStepType, Name: "collect", Concurrent: 1}

	require.NoError(t, opt.New())
	require.NoError(t, opt.PrepareStep(model.StartStep.Details, root))
	require.NoError(t, opt.PrepareStep(root, step))
	require.NoError(t, opt.PrepareSink(step, sink))
	require.NoError(t, opt.OnStepOutput(root, step, time.Millisecond, time.Millisecond))
	require.NoError(t, opt.OnSinkOutput(step, sink, time.Millisecond, time.Millisecond))
	require.NoError(t, opt.AfterSink(sink, time.Second))
	require.NoError(t, opt.Finish())

	assert.Nil(t, msr.GetMetric("read"))
	assert.Equal(t, int64(1), msr.GetMetric("parse").Total())
	assert.Equal(t, time.Second, msr.GetMetric("collect").GetTotalDuration())
}

func TestReport(t *testing.T) {
	t.Parallel()

	msr := measure.NewDefaultMeasure()

	parse := msr.AddMetric("parse", 1)
	parse.AddDuration(2 * time.Millisecond)
	parse.AddTransportDuration("read", time.Millisecond)

	collect := msr.AddMetric("collect", 1)
	collect.AddDuration(time.Millisecond)
	collect.SetTotalDuration(time.Second)

	assert.Equal(t, []string{
		"collect: 1 elements, avg 1ms, end: 1s",
		"parse: 1 elements, avg 2ms, from read 1ms",
	}, measure.Report(msr))
}
