package series_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/go-lossplot/pkg/series"
)

func TestCommaParser(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		line     string
		expected series.Record
	}{
		"two fields":       {line: "1,0.5", expected: series.Record{Line: 7, Label: "1", Value: "0.5"}},
		"extra fields":     {line: "2,0.3,0.9,train", expected: series.Record{Line: 7, Label: "2", Value: "0.3"}},
		"empty value":      {line: "3,", expected: series.Record{Line: 7, Label: "3", Value: ""}},
		"spaces are kept":  {line: " 4 , 0.25 ", expected: series.Record{Line: 7, Label: " 4 ", Value: " 0.25 "}},
		"non numeric text": {line: "epoch,loss", expected: series.Record{Line: 7, Label: "epoch", Value: "loss"}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			rec, ok, err := series.CommaParser{}.Parse(7, tc.line)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tc.expected, rec)
		})
	}
}

func TestCommaParserMalformed(t *testing.T) {
	t.Parallel()

	for _, line := range []string{"", "1 0.5", "no comma at all"} {
		_, ok, err := series.CommaParser{}.Parse(3, line)
		require.ErrorIs(t, err, series.ErrMalformedLine)
		assert.Contains(t, err.Error(), "line 3")
		assert.False(t, ok)
	}
}

func TestCaffeParserLoss(t *testing.T) {
	t.Parallel()

	parser := &series.CaffeParser{Metric: series.MetricLoss}

	lines := []string{
		"I0101 12:00:00.000000  1234 solver.cpp:228] Iteration 0, loss = 0.693",
		"I0101 12:00:00.000000  1234 solver.cpp:244]     Train net output #0: loss = 0.693 (* 1 = 0.693 loss)",
		"I0101 12:00:05.000000  1234 solver.cpp:228] Iteration 100, loss = 2.5e-01",
	}

	var got []series.Record

	for i, line := range lines {
		rec, ok, err := parser.Parse(i+1, line)
		require.NoError(t, err)

		if ok {
			got = append(got, rec)
		}
	}

	assert.Equal(t, []series.Record{
		{Line: 1, Label: "0", Value: "0.693"},
		{Line: 3, Label: "100", Value: "2.5e-01"},
	}, got)
}

func TestCaffeParserAccuracy(t *testing.T) {
	t.Parallel()

	parser := &series.CaffeParser{Metric: series.MetricAccuracy}

	lines := []string{
		"I0101 12:00:00.000000  1234 solver.cpp:404]     Test net output #0: accuracy = 0.1",
		"I0101 12:00:00.000000  1234 solver.cpp:337] Iteration 0, Testing net (#0)",
		"I0101 12:00:01.000000  1234 solver.cpp:404]     Test net output #0: accuracy = 0.12",
		"I0101 12:00:05.000000  1234 solver.cpp:228] Iteration 100, loss = 0.25",
		"I0101 12:00:09.000000  1234 solver.cpp:337] Iteration 500, Testing net (#0)",
		"I0101 12:00:10.000000  1234 solver.cpp:404]     Test net output #0: accuracy = 0.87",
	}

	var got []series.Record

	for i, line := range lines {
		rec, ok, err := parser.Parse(i+1, line)
		require.NoError(t, err)

		if ok {
			got = append(got, rec)
		}
	}

	assert.Equal(t, []series.Record{
		{Line: 3, Label: "0", Value: "0.12"},
		{Line: 6, Label: "500", Value: "0.87"},
	}, got)
}
