package leave

import "time"

// UnpaidLeaveType adalah satu-satunya tipe cuti yang memotong gaji.
// Perbandingan case-sensitive dan harus sama persis.
const UnpaidLeaveType = "Unpaid Leave"

// MonthlySummary adalah hasil agregasi cuti satu karyawan untuk satu bulan.
type MonthlySummary struct {
	TotalLeaveDays float64 // total hari cuti yang sudah APPROVED
	UnpaidDays     float64 // subset yang bertipe Unpaid Leave
}

// MonthWindow mengembalikan [awal bulan 00:00:00, akhir bulan 23:59:59]
// dalam UTC. Interval tertutup di kedua sisi.
func MonthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

// Summarize adalah filter+reduce murni atas daftar cuti: tidak ada mutasi,
// hasilnya deterministik untuk input yang sama. Cuti yang melewati batas
// bulan diatribusikan penuh ke bulan start_date-nya (tidak di-prorate).
func Summarize(leaves []Leave, year, month int) MonthlySummary {
	start, end := MonthWindow(year, month)

	var summary MonthlySummary
	for _, l := range leaves {
		if l.Status != StatusApproved {
			continue
		}
		if l.StartDate.Before(start) || l.StartDate.After(end) {
			continue
		}

		summary.TotalLeaveDays += l.DaysCount
		if l.LeaveType == UnpaidLeaveType {
			summary.UnpaidDays += l.DaysCount
		}
	}

	return summary
}
