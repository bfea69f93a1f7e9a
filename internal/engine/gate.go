package engine

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SUBRAMANIAM96/MetaTrimX/internal/domain"
	"github.com/SUBRAMANIAM96/MetaTrimX/internal/invoker"
)

// CountRecords считает записи в FASTQ/FASTA файле.
//
// Формат определяется по расширению (.gz снимается прозрачно):
// FASTQ — 4 строки на запись, FASTA — строки, начинающиеся с '>'.
// Gate-проверки считают записи, а не байты: инструмент может записать
// заголовок или пустые строки и при этом не дать ни одной записи.
func CountRecords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var r io.Reader = f
	name := path
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return 0, fmt.Errorf("open gzip %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	if isFASTA(name) {
		return countFASTA(r)
	}
	return countFASTQ(r)
}

// isFASTA возвращает true для расширений FASTA.
func isFASTA(name string) bool {
	return strings.HasSuffix(name, ".fasta") ||
		strings.HasSuffix(name, ".fa") ||
		strings.HasSuffix(name, ".fna")
}

// countFASTA считает заголовки '>'.
func countFASTA(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	count := 0
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), ">") {
			count++
		}
	}
	return count, scanner.Err()
}

// countFASTQ считает группы по 4 строки.
func countFASTQ(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lines := 0
	for scanner.Scan() {
		lines++
	}
	return lines / 4, scanner.Err()
}

// RequireRecords проверяет, что каждый артефакт существует и содержит
// хотя бы одну запись.
func RequireRecords(sample *domain.Sample, roles ...domain.ArtifactRole) error {
	for _, role := range roles {
		path := sample.ArtifactPath(role)

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("%w: %s (%s)", ErrMissingArtifact, role, path)
		}
		if info.Size() == 0 {
			return fmt.Errorf("%w: %s (%s)", ErrEmptyArtifact, role, path)
		}

		n, err := CountRecords(path)
		if err != nil {
			return fmt.Errorf("count records in %s: %w", path, err)
		}
		if n == 0 {
			return fmt.Errorf("%w: %s (%s)", ErrEmptyArtifact, role, path)
		}
	}
	return nil
}

// RequireNonEmptyFile проверяет, что файл существует и не пуст.
// Для табличных артефактов (OTU-таблица), где понятие записи не применимо.
func RequireNonEmptyFile(sample *domain.Sample, role domain.ArtifactRole) error {
	path := sample.ArtifactPath(role)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %s (%s)", ErrMissingArtifact, role, path)
	}
	if info.Size() == 0 {
		return fmt.Errorf("%w: %s (%s)", ErrEmptyArtifact, role, path)
	}
	return nil
}

// exitZeroAndRecords — стандартный предикат успеха: код 0 и непустые
// записи во всех выходных артефактах.
func exitZeroAndRecords(roles ...domain.ArtifactRole) func(*domain.Sample, *invoker.Result) error {
	return func(sample *domain.Sample, res *invoker.Result) error {
		if res.ExitCode != 0 {
			return fmt.Errorf("%w: exit code %d: %s", ErrToolFailed, res.ExitCode, firstLine(res.Stderr))
		}
		return RequireRecords(sample, roles...)
	}
}

// firstLine возвращает первую непустую строку текста (для коротких причин падения).
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
