package diagnostic

//go:generate mockgen -destination=mocks/mock_sink.go -package=mocks github.com/MBogda/turing-machine-translator/internal/diagnostic Sink
