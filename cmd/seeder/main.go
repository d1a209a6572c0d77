package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/policymatch"
	"github.com/poiesic/policymatch/core"
	"github.com/poiesic/policymatch/corpus"
	"github.com/poiesic/policymatch/ingestion"
)

// Each line is category, service name, agency, target and support content,
// separated by tabs.
var policies = []string{
	"중앙부처\t청년월세 한시 특별지원\t국토교통부\t만 19세 이상 34세 이하 무주택 청년, 중위소득 60% 이하\t월세 월 최대 20만원 12개월 지원",
	"중앙부처\t자립수당\t보건복지부\t보호종료 5년 이내 자립준비청년\t월 50만원 자립수당 지급",
	"중앙부처\t국민취업지원제도\t고용노동부\t만 18세 이상 34세 이하 구직 청년\t취업지원 서비스와 구직촉진수당 월 50만원",
	"중앙부처\t청년내일채움공제\t고용노동부\t중소기업 정규직 취업 청년 만 15세 이상 34세 이하\t2년 근속 시 1200만원 자산 형성",
	"중앙부처\t국가장학금\t한국장학재단\t대학 재학생 소득 8구간 이하\t등록금 장학금 지원",
	"중앙부처\t청년마음건강 지원사업\t보건복지부\t만 19세 이상 34세 이하 청년\t전문 심리상담 바우처 10회",
	"중앙부처\t청년도약계좌\t금융위원회\t만 19세 이상 34세 이하 개인소득 7500만원 이하\t월 70만원 한도 적금 정부기여금",
	"지자체\t서울시 청년수당\t서울특별시\t서울 거주 미취업 청년 만 19세 이상 34세 이하\t월 50만원 최대 6개월 활동지원금",
	"지자체\t자립준비청년 주거지원\t경기도\t보호종료 자립준비청년\t임대주택 보증금과 주거 정착 지원",
	"지자체\t청년 전세보증금 이자지원\t부산광역시\t부산 거주 무주택 청년 만 18세 이상 39세 이하\t전세 대출 이자 연 최대 2.4% 지원",
	"지자체\t청년 취업 면접정장 대여\t대구광역시\t구직 청년\t면접용 정장 무료 대여 연 3회",
	"지자체\t청소년 상담복지센터\t인천광역시\t만 9세 이상 24세 이하 청소년\t심리 상담과 위기 청소년 긴급 지원",
	"민간\t희망디딤돌 자립지원\t삼성 희망디딤돌\t보호종료 청소년 및 자립준비청년\t자립생활관 주거 제공과 취업 교육",
	"민간\t청년 코딩 부트캠프\t청년재단\t미취업 청년 만 34세 이하\t6개월 소프트웨어 개발 취업 교육 무료",
	"민간\t열매나눔 생계비 지원\t사회복지공동모금회\t저소득 청년 가구\t긴급 생계비 1회 100만원",
	"민간\t청년 마음 쉼표\t청년재단\t정서적 어려움을 겪는 청년\t그룹 상담 및 명상 프로그램",
}

var seedFileName = flag.String("src", "", "file of seed policies, one tab-separated policy per line")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// parsePolicy turns one seed line into a record. Missing trailing fields are empty.
func parsePolicy(line string) (*core.PolicyRecord, error) {
	fields := strings.Split(line, "\t")
	category, ok := core.ParseCategory(fields[0])
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrInvalidCategory, fields[0])
	}
	fields = append(fields, make([]string, 5)...)
	return &core.PolicyRecord{
		Category:          category,
		ServiceName:       fields[1],
		AgencyName:        fields[2],
		TargetDescription: fields[3],
		SupportContent:    fields[4],
	}, nil
}

// importBatched reads seed lines and appends them to the store in batches.
func importBatched(ctx context.Context, svc *policymatch.Service, source iter.Seq[string], batchSize int) error {
	batch := make([]*core.PolicyRecord, 0, batchSize)
	flush := func() error {
		pipeline, err := svc.NewImportPipeline(
			[]corpus.Source{corpus.NewSliceSource("seed", batch...)},
			ingestion.WithAppend())
		if err != nil {
			return err
		}
		defer pipeline.Release()
		_, err = pipeline.Import(ctx)
		return err
	}

	for line := range source {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		record, err := parsePolicy(line)
		if err != nil {
			slog.Warn("skipping seed line", "line", line, "err", err)
			continue
		}
		batch = append(batch, record)
		if len(batch) == batchSize {
			if err := flush(); err != nil {
				return err
			}
			batch = make([]*core.PolicyRecord, 0, batchSize)
		}
	}

	// Process any remaining policies
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	svc, err := policymatch.NewService("./policy_db")
	if err != nil {
		panic(err)
	}
	defer svc.Close()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(policies)
	}

	// Import in batches of 5
	if err := importBatched(ctx, svc, source, 5); err != nil {
		panic(err)
	}
}
