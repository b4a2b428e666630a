package fibril

import (
	"runtime"
	"sync"
	"time"

	"github.com/jinzhu/copier"
	"github.com/saidaz24-meet/peptide-prediction/internal/config"
)

// PredictionParams are the inputs of a batch prediction run.
type PredictionParams interface {
	GetIn() string
	SetIn(in string)

	GetOut() string
	SetOut(out string)

	GetOutputFormat() string
	SetOutputFormat(f string)

	GetJpredDir() string
	SetJpredDir(dir string)

	GetPsipredDir() string
	SetPsipredDir(dir string)

	GetWorkers() int
	SetWorkers(n int)
}

// predictionParamsImpl contains batch prediction input parameters.
type predictionParamsImpl struct {
	// the name of the file to read the dataset from
	in string

	// the name of the file to write the results to
	out string

	// output format (JSON, CSV)
	outFormat string

	// directory of downloaded Jpred result files
	jpredDir string

	// directory of PSIPRED .ss2 result files
	psipredDir string

	// number of concurrent feature-computation workers
	workers int
}

func MkPredictionParams() PredictionParams {
	return &predictionParamsImpl{}
}

func (pp predictionParamsImpl) GetIn() string {
	return pp.in
}

func (pp *predictionParamsImpl) SetIn(in string) {
	pp.in = in
}

func (pp predictionParamsImpl) GetOut() string {
	return pp.out
}

func (pp *predictionParamsImpl) SetOut(out string) {
	pp.out = out
}

func (pp predictionParamsImpl) GetOutputFormat() string {
	return pp.outFormat
}

func (pp *predictionParamsImpl) SetOutputFormat(f string) {
	pp.outFormat = f
}

func (pp predictionParamsImpl) GetJpredDir() string {
	return pp.jpredDir
}

func (pp *predictionParamsImpl) SetJpredDir(dir string) {
	pp.jpredDir = dir
}

func (pp predictionParamsImpl) GetPsipredDir() string {
	return pp.psipredDir
}

func (pp *predictionParamsImpl) SetPsipredDir(dir string) {
	pp.psipredDir = dir
}

func (pp predictionParamsImpl) GetWorkers() int {
	return pp.workers
}

func (pp *predictionParamsImpl) SetWorkers(n int) {
	pp.workers = n
}

// Predict runs the end to end fibril-forming prediction over a dataset and
// writes per-sequence results to a file.
func Predict(params PredictionParams, conf *config.Config) []ResultRow {
	start := time.Now()

	peptides, err := readDataset(params.GetIn())
	if err != nil {
		if len(peptides) == 0 {
			flog.Fatal(err)
		}
		// partial reads are fine, bad rows were skipped
		flog.Warnf("some dataset rows were skipped: %v", err)
	}

	readCount := len(peptides)
	peptides = filterPeptides(peptides, conf.MaxPeptideLength)
	if len(peptides) == 0 {
		flog.Fatal("no analyzable sequences in the dataset")
	}
	flog.Infof("Analyzing %d sequences from %s", len(peptides), params.GetIn())

	tango := NewTangoPredictor()
	psipred := NewPsipredResults(params.GetPsipredDir())
	if !tango.Available() && !psipred.Available() {
		flog.Warn("neither tango nor psipred results found, switch predictions will be unavailable")
	}
	sources := []trackSource{
		{predictor: tango, minScore: conf.TangoMinScore},
		{predictor: psipred, minScore: conf.PsipredMinScore},
	}
	jpred := NewJpredResults(params.GetJpredDir())

	rows, thresholds := runBatch(peptides, sources, jpred, params.GetWorkers(), conf)

	elapsed := time.Since(start)
	out, err := writeResult(
		params.GetOut(),
		params.GetOutputFormat(),
		params.GetIn(),
		readCount,
		rows,
		thresholds,
		elapsed.Seconds(),
	)
	if err != nil {
		flog.Fatal(err)
	}
	flog.Infof("FF positives: %d switch, %d helix out of %d analyzed",
		out.Stats.SSWPositives, out.Stats.HelixPositives, out.Stats.AnalyzedCount)

	flog.Debugw("execution time", "execution", elapsed)
	return rows
}

// runBatch executes the three batch phases: per-sequence feature
// computation (parallel), batch threshold reduction, and per-sequence
// classification. The reduction cannot be folded into the first pass
// because every sequence's classification depends on means over the whole
// batch.
func runBatch(
	peptides []Peptide,
	sources []trackSource,
	jpred *JpredResults,
	workers int,
	conf *config.Config,
) ([]ResultRow, BatchThresholds) {
	features := computeAllFeatures(peptides, sources, jpred, workers, conf)
	thresholds := computeBatchThresholds(features)

	if thresholds.SSWAvgHydro.OK {
		flog.Infof("SSW hydrophobicity threshold for this batch: %.4f", thresholds.SSWAvgHydro.Value)
	}
	if thresholds.HelixAvgMoment.OK {
		flog.Infof("Helix moment threshold for this batch: %.4f", thresholds.HelixAvgMoment.Value)
	}

	rows := make([]ResultRow, len(features))
	for i, f := range features {
		rows[i] = assembleRow(f, classify(f, thresholds))
	}
	return rows, thresholds
}

// computeAllFeatures fans phase 1 out over a bounded worker pool. Feature
// computation is independent per sequence; results are written by index so
// the output keeps the dataset order.
func computeAllFeatures(
	peptides []Peptide,
	sources []trackSource,
	jpred *JpredResults,
	workers int,
	conf *config.Config,
) []Features {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(peptides) {
		workers = len(peptides)
	}

	features := make([]Features, len(peptides))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				features[i] = computeFeatures(peptides[i], sources, jpred, conf)
			}
		}()
	}

	for i := range peptides {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return features
}

// trackSource pairs a structure predictor with the segmentation threshold
// matching its track's units. Tracks and thresholds travel together;
// applying one predictor's cutoff to another's track silently produces
// nonsense segments.
type trackSource struct {
	predictor StructurePredictor
	minScore  float64
}

// computeFeatures is the pure phase-1 step for one sanitized peptide.
func computeFeatures(
	p Peptide,
	sources []trackSource,
	jpred *JpredResults,
	conf *config.Config,
) Features {
	f := Features{
		Entry:  p.Entry,
		Seq:    p.Seq,
		Charge: TotalCharge(p.Seq),
	}

	if hydro, err := Hydrophobicity(p.Seq); err == nil {
		f.Hydrophobicity = Measurement{Value: hydro, OK: true}
	} else {
		flog.Warnf("hydrophobicity unavailable for %s: %v", p.Entry, err)
	}
	if moment, err := HydrophobicMoment(p.Seq, conf.HelixMomentAngle); err == nil {
		f.HelixMomentFull = Measurement{Value: moment, OK: true}
	}
	if moment, err := HydrophobicMoment(p.Seq, conf.BetaMomentAngle); err == nil {
		f.BetaMomentFull = Measurement{Value: moment, OK: true}
	}

	f.FFHelixPercent = HelixCorePercent(p.Seq, conf.FFHelixWindow, conf.FFHelixThreshold)
	f.FFHelixSegments = HelixCoreSegments(p.Seq, conf.FFHelixWindow, conf.FFHelixThreshold)

	addSwitchFeatures(&f, sources, conf)
	addHelixFeatures(&f, jpred, conf)

	return f
}

// addSwitchFeatures fills the secondary-structure-switch fields from the
// first track source that has a prediction for the sequence. Sources
// later in the list are fallbacks, each segmented with its own threshold.
// No source producing tracks leaves every field unavailable; no
// zero-valued track is ever synthesized.
func addSwitchFeatures(f *Features, sources []trackSource, conf *config.Config) {
	for _, src := range sources {
		tracks, err := src.predictor.Predict(f.Entry, f.Seq)
		if err != nil {
			flog.Warnf("%s prediction failed for %s: %v", src.predictor.Name(), f.Entry, err)
			continue
		}
		if tracks == nil {
			continue
		}

		f.SSWHelixPercent = Measurement{Value: trackContentPercent(tracks.Helix, src.minScore), OK: true}
		f.SSWBetaPercent = Measurement{Value: trackContentPercent(tracks.Beta, src.minScore), OK: true}

		helixSegments := extractSegments(tracks.Helix, src.minScore, conf.SegmentMinLength, conf.SegmentMaxGap)
		betaSegments := extractSegments(tracks.Beta, src.minScore, conf.SegmentMinLength, conf.SegmentMaxGap)

		f.SSWSegments = mergeSwitchSegments(helixSegments, betaSegments)
		f.SSWScore, f.SSWDiff = scoreSwitchSegments(tracks.Helix, tracks.Beta, f.SSWSegments)
		return
	}
}

// addHelixFeatures fills the helix-route fields from the Jpred confidence
// track.
func addHelixFeatures(f *Features, jpred *JpredResults, conf *config.Config) {
	track, err := jpred.HelixConfidence(f.Entry)
	if err != nil {
		flog.Warnf("failed to read jpred result for %s: %v", f.Entry, err)
		return
	}
	if track == nil {
		return
	}

	// any residue called helix counts here, regardless of confidence
	f.HelixPercent = Measurement{Value: trackContentPercent(track, 0), OK: true}

	segments := extractSegments(track, conf.JpredMinScore, conf.SegmentMinLength, conf.SegmentMaxGap)
	if len(f.Seq) < len(track) {
		// the sequence was padded to meet Jpred's minimum input length
		segments = clipSegmentsToLength(len(f.Seq), conf.SegmentMinLength, segments)
	}

	f.HelixSegments = segments
	f.HelixScore = avgSegmentScore(track, segments)
	f.HelixAvgMoment = avgMomentBySegments(f.Seq, segments)
}

// assembleRow freezes one sequence's features and verdict into a result
// row.
func assembleRow(f Features, c Classification) ResultRow {
	row := ResultRow{}
	// identical fields (entry, charge, segments, percentages) copy over
	if err := copier.Copy(&row, &f); err != nil {
		flog.Fatalf("failed to assemble result row for %s: %v", f.Entry, err)
	}

	row.Length = len(f.Seq)
	row.Hydrophobicity = f.Hydrophobicity.Ptr()
	row.HelixMomentFull = f.HelixMomentFull.Ptr()
	row.BetaMomentFull = f.BetaMomentFull.Ptr()
	row.HelixScore = f.HelixScore.Ptr()
	row.HelixAvgMoment = f.HelixAvgMoment.Ptr()
	row.HelixPercent = f.HelixPercent.Ptr()
	row.SSWScore = f.SSWScore.Ptr()
	row.SSWDiff = f.SSWDiff.Ptr()
	row.SSWHelixPercent = f.SSWHelixPercent.Ptr()
	row.SSWBetaPercent = f.SSWBetaPercent.Ptr()

	row.SSWPrediction = c.SSWPositive
	row.SSWFFScore = c.SSWFFScore.Ptr()
	row.HelixPrediction = c.HelixPositive
	row.HelixFFScore = c.HelixFFScore.Ptr()

	return row
}
