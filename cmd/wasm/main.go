//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"wordfreq/config"
	"wordfreq/internal/adapter/analyzer"
	"wordfreq/internal/adapter/corpus"
	"wordfreq/internal/adapter/memstore"
	"wordfreq/internal/logging"
	"wordfreq/internal/usecase"
)

const browserCorpus = "Browser Corpus"

var (
	docs *memstore.Documents
	ws   *usecase.Workspace
)

func init() {
	reset()
}

func reset() {
	docs = memstore.NewDocuments()
	reports := memstore.NewReportStore(nil)
	log := logging.Discard()
	ws = usecase.NewWorkspace(
		corpus.NewRegistry(nil),
		reports,
		usecase.NewAnalyzeUseCase(docs, analyzer.NewTokenizer(), analyzer.NewChecker(analyzer.DefaultPctTolerance), reports, log),
		usecase.NewOverlapUseCase(reports, config.DefaultMetricRegistry(), 8, true),
		log,
	)
	ws.AddCorpus(browserCorpus)
}

func main() {
	c := make(chan struct{})

	js.Global().Set("wordfreqAdd", js.FuncOf(addDocument))
	js.Global().Set("wordfreqReport", js.FuncOf(report))
	js.Global().Set("wordfreqOverlap", js.FuncOf(overlap))
	js.Global().Set("wordfreqClear", js.FuncOf(clearDocuments))

	<-c
}

func addDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return makeError("usage: wordfreqAdd(filename, content)")
	}

	filename := args[0].String()
	docs.Put(filename, args[1].String())
	ws.AddFiles(browserCorpus, filename)
	if err := ws.MarkStale(browserCorpus); err != nil {
		return makeError(err.Error())
	}

	return makeResult(map[string]interface{}{
		"success":  true,
		"filename": filename,
		"files":    docs.Paths(),
	})
}

func report(this js.Value, args []js.Value) interface{} {
	result, err := ws.Analyze(browserCorpus, nil)
	if err != nil {
		return makeError("analysis failed: " + err.Error())
	}

	failures := make([]map[string]interface{}, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, map[string]interface{}{"path": f.Path, "error": f.Err.Error()})
	}
	return makeResult(map[string]interface{}{
		"report":   result.Report,
		"failures": failures,
	})
}

func overlap(this js.Value, args []js.Value) interface{} {
	mode := config.MetricBOScore
	if len(args) > 0 {
		mode = args[0].String()
	}
	if !ws.HasReportForCorpus(browserCorpus) {
		if _, err := ws.Analyze(browserCorpus, nil); err != nil {
			return makeError("analysis failed: " + err.Error())
		}
	}

	result, err := ws.Overlap(browserCorpus, mode)
	if err != nil {
		return makeError("overlap failed: " + err.Error())
	}
	return makeResult(map[string]interface{}{
		"corpus":    result.Corpus,
		"mode":      result.Mode,
		"bon1":      result.BO.Ranked(1),
		"bon2":      result.BO.Ranked(2),
		"pairs":     result.Pairs,
		"assurance": result.Assurance,
	})
}

func clearDocuments(this js.Value, args []js.Value) interface{} {
	reset()
	return makeResult(map[string]interface{}{
		"success": true,
	})
}

func makeError(msg string) interface{} {
	result, _ := json.Marshal(map[string]interface{}{
		"error": msg,
	})
	return string(result)
}

func makeResult(data map[string]interface{}) interface{} {
	result, _ := json.Marshal(data)
	return string(result)
}
